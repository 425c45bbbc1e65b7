package movie

import (
	"fmt"
	"strings"

	"github.com/streamflix/catalog/internal/domain/search/filter"
)

// movieColumns is the projection shared by every row-returning movie query.
// The order must match movieRow's field order.
const movieColumns = "id, title, description, director, genres, movie_cast, release_year, rating, duration, image_url"

// fullTextVector is the document expression indexed for free-text matching.
const fullTextVector = "to_tsvector('english', title || ' ' || COALESCE(description, '') || ' ' || COALESCE(director, ''))"

// rankExpression scores rows against the query; it deliberately ranks only
// title+description, matching the weight the ILIKE fallback gives the title.
const rankExpression = "ts_rank(to_tsvector('english', title || ' ' || COALESCE(description, '')), plainto_tsquery('english', $1))"

// clause is one optional predicate: a template whose %[n]d verbs are filled
// with positional placeholder indexes, plus one bound value per distinct
// placeholder. A value may be referenced more than once in the template
// (the ILIKE wildcard is bound once and used three times).
type clause struct {
	template string
	args     []any
}

// predicateClauses translates filters into the ordered clause list shared by
// the search and count variants. The order is fixed: free text, genres, year
// bounds, rating bounds, duration bounds. Rows with a NULL duration never
// match a duration bound; SQL three-valued comparison excludes them.
func predicateClauses(f filter.Filters) []clause {
	var cs []clause

	if f.HasQuery() {
		q := strings.TrimSpace(f.Query)
		cs = append(cs, clause{
			template: "(" + fullTextVector + " @@ plainto_tsquery('english', $%[1]d)" +
				" OR title ILIKE $%[2]d OR description ILIKE $%[2]d OR director ILIKE $%[2]d)",
			args: []any{q, "%" + q + "%"},
		})
	}
	if len(f.Genres) > 0 {
		cs = append(cs, clause{template: "genres && $%[1]d", args: []any{f.Genres}})
	}
	if f.YearMin != nil {
		cs = append(cs, clause{template: "release_year >= $%[1]d", args: []any{*f.YearMin}})
	}
	if f.YearMax != nil {
		cs = append(cs, clause{template: "release_year <= $%[1]d", args: []any{*f.YearMax}})
	}
	if f.RatingMin != nil {
		cs = append(cs, clause{template: "rating >= $%[1]d", args: []any{*f.RatingMin}})
	}
	if f.RatingMax != nil {
		cs = append(cs, clause{template: "rating <= $%[1]d", args: []any{*f.RatingMax}})
	}
	if f.DurationMin != nil {
		cs = append(cs, clause{template: "duration >= $%[1]d", args: []any{*f.DurationMin}})
	}
	if f.DurationMax != nil {
		cs = append(cs, clause{template: "duration <= $%[1]d", args: []any{*f.DurationMax}})
	}

	return cs
}

// renderWhere folds the clause list into a WHERE tail and its parameter
// list, assigning positional placeholders in clause order. Both query
// variants render from the same list, so their predicates and bound values
// agree by construction.
func renderWhere(cs []clause) (string, []any) {
	var b strings.Builder
	b.WriteString(" WHERE true")

	params := []any{}
	for _, c := range cs {
		idx := make([]any, len(c.args))
		for i := range c.args {
			idx[i] = len(params) + i + 1
		}
		b.WriteString(" AND ")
		b.WriteString(fmt.Sprintf(c.template, idx...))
		params = append(params, c.args...)
	}

	return b.String(), params
}

// BuildSearchQuery compiles filters into the row-fetch statement. Ordering:
// full-text rank descending when a query is present (the rank key is omitted
// entirely otherwise), then rating, then release year, nulls last for both.
// Limit and offset are always the final two parameters.
func BuildSearchQuery(f filter.Filters) (string, []any) {
	where, params := renderWhere(predicateClauses(f))

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(movieColumns)
	b.WriteString(" FROM movies")
	b.WriteString(where)

	b.WriteString(" ORDER BY ")
	if f.HasQuery() {
		// The trimmed query is always $1 when the free-text clause is present.
		b.WriteString(rankExpression)
		b.WriteString(" DESC, ")
	}
	b.WriteString("rating DESC NULLS LAST, release_year DESC NULLS LAST")

	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(params)+1, len(params)+2)
	params = append(params, f.Limit, f.Offset)

	return b.String(), params
}

// BuildCountQuery compiles filters into the paired count statement: the
// identical predicate chain with no ordering or window.
func BuildCountQuery(f filter.Filters) (string, []any) {
	where, params := renderWhere(predicateClauses(f))
	return "SELECT COUNT(*) FROM movies" + where, params
}

// BuildSuggestionQuery compiles the autocomplete statement: one wildcard
// parameter matched case-insensitively against titles, directors, cast
// members, and genres, grouped by candidate text and ranked by frequency.
func BuildSuggestionQuery(term string) (string, []any) {
	const q = `SELECT suggestion, type, COUNT(*) AS frequency
FROM (
	SELECT title AS suggestion, 'title' AS type FROM movies WHERE title ILIKE $1
	UNION ALL
	SELECT director AS suggestion, 'director' AS type FROM movies WHERE director IS NOT NULL AND director ILIKE $1
	UNION ALL
	SELECT actor AS suggestion, 'actor' AS type FROM movies, unnest(movie_cast) AS actor WHERE actor ILIKE $1
	UNION ALL
	SELECT genre AS suggestion, 'genre' AS type FROM movies, unnest(genres) AS genre WHERE genre ILIKE $1
) AS candidates
GROUP BY suggestion, type
ORDER BY frequency DESC, suggestion ASC
LIMIT 10`

	return q, []any{"%" + term + "%"}
}
