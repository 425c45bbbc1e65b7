package domain

// Movie is a single catalog entry. Rows are bulk-loaded by the seed
// operation and are read-only for everything else in this service.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Director    string   `json:"director,omitempty"`
	Genres      []string `json:"genres"`
	Cast        []string `json:"cast,omitempty"`
	ReleaseYear int      `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	Duration    *int     `json:"duration,omitempty"` // minutes, null when unknown
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// Suggestion is one autocomplete candidate with its corpus frequency.
type Suggestion struct {
	Text      string `json:"text"`
	Type      string `json:"type"` // title, director, actor, genre
	Frequency int    `json:"frequency"`
}
