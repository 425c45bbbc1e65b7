// Package filter holds the validated, typed search filter set the query
// compiler consumes. Raw query-string coercion lives in the transport layer;
// by the time a Filters value reaches a usecase it is already typed.
package filter

import (
	"strings"

	"github.com/streamflix/catalog/internal/domain"
)

// DefaultLimit is the page size applied when the caller supplies none.
const DefaultLimit = 50

// Filters is the full set of optional search criteria. Nil pointer fields
// mean "not supplied"; an absent filter contributes no predicate.
type Filters struct {
	Query       string
	Genres      []string
	YearMin     *int
	YearMax     *int
	RatingMin   *float64
	RatingMax   *float64
	DurationMin *int
	DurationMax *int
	Limit       int
	Offset      int
}

// Normalized trims the free-text query and applies the default limit when
// none was supplied. A negative offset is left as-is for Validate to reject,
// the same treatment a negative limit gets.
func (f Filters) Normalized() Filters {
	f.Query = strings.TrimSpace(f.Query)
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	return f
}

// Validate rejects pagination values that cannot describe a window. Range
// bounds need no checks here: they are typed and any combination is legal.
func (f Filters) Validate() error {
	if f.Limit <= 0 {
		return domain.NewValidation("limit", "must be a positive integer")
	}
	if f.Offset < 0 {
		return domain.NewValidation("offset", "must be non-negative")
	}
	return nil
}

// HasQuery reports whether a non-empty free-text query survives trimming.
func (f Filters) HasQuery() bool {
	return strings.TrimSpace(f.Query) != ""
}
