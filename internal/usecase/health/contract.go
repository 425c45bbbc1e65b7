package health

import "context"

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks cache connectivity.
type CachePinger interface {
	Ping(ctx context.Context) error
}
