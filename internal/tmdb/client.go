package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/binhbb2204/Top-Movies/pkg/config"
)

// MaxDescriptionLength bounds the overview text kept for a movie.
const MaxDescriptionLength = 500

// Source is the metadata lookup used by the web handlers and the CLI.
type Source interface {
	Search(ctx context.Context, title string) ([]Candidate, error)
	Details(ctx context.Context, externalID string) (MovieDetail, error)
}

// Candidate is one search hit, passed through as the service returned it.
type Candidate struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
	VoteAverage   float64 `json:"vote_average"`
}

// Year returns the year part of ReleaseDate, or "" when it has none.
func (c Candidate) Year() string {
	year, _, _ := strings.Cut(c.ReleaseDate, "-")
	return year
}

// MovieDetail carries the fields needed to store a new movie.
type MovieDetail struct {
	ExternalID  string
	Title       string
	Year        int
	ImageURL    string
	Description string
}

type Client struct {
	BaseURL      string
	ImageBaseURL string
	Token        string
	Client       *http.Client
}

// NewClient returns a client for the TMDB v3 API. A bearer token is required.
func NewClient(cfg config.TMDB) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("TMDB_API_TOKEN is required in environment")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		BaseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		ImageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		Token:        token,
		Client:       &http.Client{Timeout: timeout},
	}, nil
}

type searchRes struct {
	Page    int          `json:"page"`
	Results *[]Candidate `json:"results"`
}

type detailRes struct {
	ID            int64   `json:"id"`
	OriginalTitle *string `json:"original_title"`
	ReleaseDate   *string `json:"release_date"`
	PosterPath    *string `json:"poster_path"`
	Overview      *string `json:"overview"`
}

func (c *Client) Search(ctx context.Context, title string) ([]Candidate, error) {
	qs := url.Values{}
	qs.Set("query", title)

	var r searchRes
	if err := c.get(ctx, "/search/movie", qs, &r); err != nil {
		return nil, err
	}
	if r.Results == nil {
		return nil, fmt.Errorf("%w: search response has no results list", ErrUpstream)
	}
	return *r.Results, nil
}

func (c *Client) Details(ctx context.Context, externalID string) (MovieDetail, error) {
	qs := url.Values{}
	qs.Set("language", "en-US")

	var r detailRes
	if err := c.get(ctx, "/movie/"+url.PathEscape(externalID), qs, &r); err != nil {
		return MovieDetail{}, err
	}

	detail, err := convertDetail(r, c.ImageBaseURL)
	if err != nil {
		return MovieDetail{}, err
	}
	detail.ExternalID = externalID
	return detail, nil
}

func (c *Client) get(ctx context.Context, path string, qs url.Values, out interface{}) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("%w: build url: %w", ErrUpstream, err)
	}
	u.RawQuery = qs.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "TopMovies/1.0 (+github.com/binhbb2204/Top-Movies)")

	res, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: TMDB API request failed: %s", ErrUpstream, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	return nil
}

func convertDetail(r detailRes, imageBaseURL string) (MovieDetail, error) {
	if r.OriginalTitle == nil || strings.TrimSpace(*r.OriginalTitle) == "" {
		return MovieDetail{}, &MissingFieldError{Field: "original_title"}
	}
	if r.ReleaseDate == nil || *r.ReleaseDate == "" {
		return MovieDetail{}, &MissingFieldError{Field: "release_date"}
	}
	if r.PosterPath == nil || *r.PosterPath == "" {
		return MovieDetail{}, &MissingFieldError{Field: "poster_path"}
	}
	if r.Overview == nil {
		return MovieDetail{}, &MissingFieldError{Field: "overview"}
	}

	yearPart, _, _ := strings.Cut(*r.ReleaseDate, "-")
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return MovieDetail{}, &MissingFieldError{Field: "release_date"}
	}

	poster := *r.PosterPath
	if !strings.HasPrefix(poster, "/") {
		poster = "/" + poster
	}

	return MovieDetail{
		Title:       strings.TrimSpace(*r.OriginalTitle),
		Year:        year,
		ImageURL:    imageBaseURL + poster,
		Description: truncate(*r.Overview, MaxDescriptionLength),
	}, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
