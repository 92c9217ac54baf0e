package models

// Movie is a row of the movies table.
type Movie struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Year        int     `json:"year" db:"year"`
	Description string  `json:"description" db:"description"`
	Rating      float64 `json:"rating" db:"rating"`
	Ranking     int     `json:"ranking" db:"ranking"`
	Review      string  `json:"review" db:"review"`
	ImgURL      string  `json:"img_url" db:"img_url"`
}

// NewMovie holds the caller-supplied columns of a movie about to be inserted.
type NewMovie struct {
	Title       string
	Year        int
	Description string
	ImgURL      string
}
