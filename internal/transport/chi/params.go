package chi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/streamflix/catalog/internal/domain"
	"github.com/streamflix/catalog/internal/domain/search/filter"
)

// parseFilters builds search filters from the request query string. Every
// malformed value is reported with the parameter name that carried it.
func parseFilters(r *http.Request, maxPageSize int) (filter.Filters, error) {
	q := r.URL.Query()

	f := filter.Filters{
		Query:  q.Get("q"),
		Genres: splitList(q.Get("genres")),
	}

	var err error
	if f.YearMin, err = queryInt(r, "yearMin"); err != nil {
		return filter.Filters{}, err
	}
	if f.YearMax, err = queryInt(r, "yearMax"); err != nil {
		return filter.Filters{}, err
	}
	if f.RatingMin, err = queryFloat(r, "ratingMin"); err != nil {
		return filter.Filters{}, err
	}
	if f.RatingMax, err = queryFloat(r, "ratingMax"); err != nil {
		return filter.Filters{}, err
	}
	if f.DurationMin, err = queryInt(r, "durationMin"); err != nil {
		return filter.Filters{}, err
	}
	if f.DurationMax, err = queryInt(r, "durationMax"); err != nil {
		return filter.Filters{}, err
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		return filter.Filters{}, err
	}
	if limit != nil {
		if *limit > maxPageSize {
			return filter.Filters{}, domain.NewValidation("limit",
				fmt.Sprintf("must not exceed %d", maxPageSize))
		}
		f.Limit = *limit
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		return filter.Filters{}, err
	}
	if offset != nil {
		f.Offset = *offset
	}

	return f, nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidation(name, "must be an integer")
	}
	return &v, nil
}

// queryFloat parses an optional float query parameter.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewValidation(name, "must be a number")
	}
	return &v, nil
}
