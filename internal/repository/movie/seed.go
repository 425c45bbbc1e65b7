package movie

import (
	"context"
	"fmt"
)

// seedRow is one demo catalog entry.
type seedRow struct {
	title       string
	description string
	director    string
	genres      []string
	cast        []string
	releaseYear int
	rating      float64
	duration    int
	imageURL    string
}

var seedRows = []seedRow{
	{
		title:       "The Shawshank Redemption",
		description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		director:    "Frank Darabont",
		genres:      []string{"drama"},
		cast:        []string{"Tim Robbins", "Morgan Freeman"},
		releaseYear: 1994,
		rating:      9.3,
		duration:    142,
		imageURL:    "https://m.media-amazon.com/images/M/MV5BNDE3ODcxYzMtY2YzZC00NmNlLWJiNDMtZDViZWM2MzIxZDYwXkEyXkFqcGdeQXVyNjAwNDUxODI@._V1_.jpg",
	},
	{
		title:       "The Godfather",
		description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		director:    "Francis Ford Coppola",
		genres:      []string{"crime", "drama"},
		cast:        []string{"Marlon Brando", "Al Pacino"},
		releaseYear: 1972,
		rating:      9.2,
		duration:    175,
		imageURL:    "https://m.media-amazon.com/images/M/MV5BM2MyNjYxNmUtYTAwNi00MTYxLWJmNWYtYzZlODY3ZTk3OTFlXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_.jpg",
	},
	{
		title:       "The Dark Knight",
		description: "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		director:    "Christopher Nolan",
		genres:      []string{"action", "crime", "drama"},
		cast:        []string{"Christian Bale", "Heath Ledger"},
		releaseYear: 2008,
		rating:      9.0,
		duration:    152,
		imageURL:    "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_.jpg",
	},
	{
		title:       "Pulp Fiction",
		description: "The lives of two mob hitmen, a boxer, a gangster and his wife, and a pair of diner bandits intertwine in four tales of violence and redemption.",
		director:    "Quentin Tarantino",
		genres:      []string{"crime", "drama"},
		cast:        []string{"John Travolta", "Samuel L. Jackson", "Uma Thurman"},
		releaseYear: 1994,
		rating:      8.9,
		duration:    154,
		imageURL:    "https://m.media-amazon.com/images/M/MV5BNGNhMDIzZTUtNTBlZi00MTRlLWFjM2ItYzViMjE3YzI5MjljXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_.jpg",
	},
	{
		title:       "Fight Club",
		description: "An insomniac office worker and a devil-may-care soapmaker form an underground fight club that evolves into something much, much more.",
		director:    "David Fincher",
		genres:      []string{"drama", "thriller"},
		cast:        []string{"Brad Pitt", "Edward Norton"},
		releaseYear: 1999,
		rating:      8.8,
		duration:    139,
		imageURL:    "https://m.media-amazon.com/images/M/MV5BNDIzNDU0YzEtYzE5Ni00ZjlkLTk5ZjgtNjM3NWE4YzA3Nzk3XkEyXkFqcGdeQXVyMjUzOTY1NTc@._V1_.jpg",
	},
}

const seedInsert = `INSERT INTO movies
	(title, description, director, genres, movie_cast, release_year, rating, duration, image_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Seed replaces the catalog contents with the demo rows.
func (r *Repo) Seed(ctx context.Context) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	for _, row := range seedRows {
		_, err := r.db.Exec(ctx, seedInsert,
			row.title, row.description, row.director, row.genres, row.cast,
			row.releaseYear, row.rating, row.duration, row.imageURL,
		)
		if err != nil {
			return fmt.Errorf("seed movie %q: %w", row.title, err)
		}
	}
	return nil
}
