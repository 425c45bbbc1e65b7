package topology

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/streamflix/catalog/internal/domain"
)

type staticSource struct {
	status domain.ServiceStatus
}

func (s *staticSource) Status() domain.ServiceStatus { return s.status }

func TestSnapshot(t *testing.T) {
	hub := NewHub(zap.NewNop(),
		&staticSource{status: domain.ServiceStatus{Service: "User Management", Status: "active"}},
		&staticSource{status: domain.ServiceStatus{Service: "Streaming Service", Status: "active"}},
	)

	snap := hub.Snapshot()
	if len(snap.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(snap.Services))
	}
	if snap.Services[0].Service != "User Management" {
		t.Errorf("source order must be preserved: %+v", snap.Services)
	}
	if snap.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestServeHTTP_SendsInitialSnapshot(t *testing.T) {
	hub := NewHub(zap.NewNop(),
		&staticSource{status: domain.ServiceStatus{Service: "Catalog", Status: "active", Counts: map[string]int{"movies": 5}}},
	)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	var snap Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(snap.Services) != 1 || snap.Services[0].Service != "Catalog" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Services[0].Counts["movies"] != 5 {
		t.Errorf("counts missing: %+v", snap.Services[0])
	}
}

func TestBroadcast_ReachesSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop(),
		&staticSource{status: domain.ServiceStatus{Service: "Catalog", Status: "active"}},
	)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	var first Snapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("initial read failed: %v", err)
	}

	hub.broadcast(hub.Snapshot())

	var second Snapshot
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("broadcast read failed: %v", err)
	}
	if len(second.Services) != 1 {
		t.Errorf("unexpected broadcast: %+v", second)
	}
}

// The initial snapshot is written from the HTTP handler goroutine while
// broadcasts run from the hub's own goroutine; both paths must serialize on
// the same per-connection lock or frames interleave.
func TestSubscribeDuringBroadcasts(t *testing.T) {
	hub := NewHub(zap.NewNop(),
		&staticSource{status: domain.ServiceStatus{Service: "Catalog", Status: "active"}},
	)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	stop := make(chan struct{})
	var broadcasting sync.WaitGroup
	broadcasting.Add(1)
	go func() {
		defer broadcasting.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.broadcast(hub.Snapshot())
			}
		}
	}()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	var clients sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		clients.Add(1)
		go func() {
			defer clients.Done()

			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				errs <- err
				return
			}
			defer conn.Close()

			// Every frame must parse; a torn write surfaces here.
			for j := 0; j < 5; j++ {
				var snap Snapshot
				if err := conn.ReadJSON(&snap); err != nil {
					errs <- err
					return
				}
				if len(snap.Services) != 1 || snap.Services[0].Service != "Catalog" {
					errs <- fmt.Errorf("bad snapshot: %+v", snap)
					return
				}
			}
		}()
	}

	clients.Wait()
	close(stop)
	broadcasting.Wait()

	close(errs)
	for err := range errs {
		t.Errorf("subscriber failed: %v", err)
	}
}
