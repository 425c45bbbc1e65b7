package chi

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/streamflix/catalog/internal/domain"
)

func TestParseFilters_AllParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/search?q=dark&genres=action,thriller&yearMin=2000&yearMax=2010"+
			"&ratingMin=7.5&ratingMax=9&durationMin=90&durationMax=180&limit=20&offset=40", nil)

	f, err := parseFilters(r, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Query != "dark" {
		t.Errorf("query = %q", f.Query)
	}
	if len(f.Genres) != 2 || f.Genres[0] != "action" || f.Genres[1] != "thriller" {
		t.Errorf("genres = %v", f.Genres)
	}
	if *f.YearMin != 2000 || *f.YearMax != 2010 {
		t.Errorf("years = %v..%v", *f.YearMin, *f.YearMax)
	}
	if *f.RatingMin != 7.5 || *f.RatingMax != 9 {
		t.Errorf("ratings = %v..%v", *f.RatingMin, *f.RatingMax)
	}
	if *f.DurationMin != 90 || *f.DurationMax != 180 {
		t.Errorf("durations = %v..%v", *f.DurationMin, *f.DurationMax)
	}
	if f.Limit != 20 || f.Offset != 40 {
		t.Errorf("window = %d/%d", f.Limit, f.Offset)
	}
}

func TestParseFilters_Empty(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/search", nil)

	f, err := parseFilters(r, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Query != "" || f.Genres != nil || f.YearMin != nil || f.RatingMin != nil {
		t.Errorf("expected zero filters, got %+v", f)
	}
	if f.Limit != 0 || f.Offset != 0 {
		t.Errorf("window must stay zero for the service to default, got %d/%d", f.Limit, f.Offset)
	}
}

func TestParseFilters_BadNumeric(t *testing.T) {
	cases := []struct {
		query string
		param string
	}{
		{"yearMin=abc", "yearMin"},
		{"yearMax=12.5", "yearMax"},
		{"ratingMin=high", "ratingMin"},
		{"durationMax=2h", "durationMax"},
		{"limit=ten", "limit"},
		{"offset=-1x", "offset"},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/search?"+tc.query, nil)

			_, err := parseFilters(r, 100)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Param != tc.param {
				t.Errorf("expected param %q, got %q", tc.param, verr.Param)
			}
		})
	}
}

func TestParseFilters_LimitCap(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/search?limit=500", nil)

	_, err := parseFilters(r, 100)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Param != "limit" {
		t.Errorf("expected param limit, got %q", verr.Param)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"action", 1},
		{"action,thriller", 2},
		{"action, thriller , ", 2},
		{",,", 0},
	}

	for _, tc := range cases {
		got := splitList(tc.in)
		if len(got) != tc.want {
			t.Errorf("splitList(%q) = %v, want %d entries", tc.in, got, tc.want)
		}
	}
}
