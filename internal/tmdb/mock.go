package tmdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockSource implements Source for testing
type MockSource struct {
	mu         sync.Mutex
	candidates []Candidate
	details    map[string]MovieDetail

	// Control flags for testing error scenarios
	ShouldFailSearch  bool
	ShouldFailDetails bool

	SearchCalls  int
	DetailsCalls int
}

// NewMockSource creates a mock source with one known movie
func NewMockSource() *MockSource {
	return &MockSource{
		candidates: []Candidate{
			{ID: 603, Title: "The Matrix", PosterPath: "/x.jpg", ReleaseDate: "1999-03-30"},
		},
		details: map[string]MovieDetail{
			"603": {
				ExternalID:  "603",
				Title:       "The Matrix",
				Year:        1999,
				ImageURL:    "https://image.tmdb.org/t/p/w500/x.jpg",
				Description: "Set in the 22nd century, The Matrix tells the story of a computer hacker who joins a group of underground insurgents.",
			},
		},
	}
}

func (m *MockSource) Search(ctx context.Context, title string) ([]Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls++

	if m.ShouldFailSearch {
		return nil, fmt.Errorf("%w: mock search error", ErrUpstream)
	}

	results := []Candidate{}
	needle := strings.ToLower(title)
	for _, c := range m.candidates {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			results = append(results, c)
		}
	}
	return results, nil
}

func (m *MockSource) Details(ctx context.Context, externalID string) (MovieDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DetailsCalls++

	if m.ShouldFailDetails {
		return MovieDetail{}, fmt.Errorf("%w: mock details error", ErrUpstream)
	}

	d, ok := m.details[externalID]
	if !ok {
		return MovieDetail{}, ErrNotFound
	}
	return d, nil
}

// AddMovie registers a movie as both a search candidate and a detail record.
func (m *MockSource) AddMovie(c Candidate, d MovieDetail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates = append(m.candidates, c)
	m.details[fmt.Sprintf("%d", c.ID)] = d
}
