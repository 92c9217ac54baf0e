package movie

import (
	"github.com/binhbb2204/Top-Movies/internal/tmdb"
	"github.com/binhbb2204/Top-Movies/pkg/models"
)

// NewMovieFromDetail maps fetched metadata onto the columns of a new movie.
func NewMovieFromDetail(d tmdb.MovieDetail) models.NewMovie {
	return models.NewMovie{
		Title:       d.Title,
		Year:        d.Year,
		Description: d.Description,
		ImgURL:      d.ImageURL,
	}
}
