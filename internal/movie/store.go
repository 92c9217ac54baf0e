package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/binhbb2204/Top-Movies/pkg/models"
)

// Store is the persistence boundary for movie records.
type Store interface {
	// ListRanked returns every movie ascending by rating and persists a fresh
	// ranking for each one: the best rated gets len(movies), the worst gets 1.
	ListRanked(ctx context.Context) ([]models.Movie, error)
	Create(ctx context.Context, m models.NewMovie) (models.Movie, error)
	Get(ctx context.Context, id int64) (models.Movie, error)
	Update(ctx context.Context, id int64, rating float64, review string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// SQLStore implements Store on top of the movies table.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const movieColumns = `id, title, year, description, rating, ranking, review, img_url`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.Description,
		&m.Rating,
		&m.Ranking,
		&m.Review,
		&m.ImgURL,
	)
	return m, err
}

func (s *SQLStore) ListRanked(ctx context.Context) ([]models.Movie, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ranking transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY rating ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, `UPDATE movies SET ranking = ? WHERE id = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare ranking update: %w", err)
	}
	defer stmt.Close()

	for i := range movies {
		movies[i].Ranking = i + 1
		if _, err := stmt.ExecContext(ctx, movies[i].Ranking, movies[i].ID); err != nil {
			return nil, fmt.Errorf("update ranking of movie %d: %w", movies[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rankings: %w", err)
	}
	return movies, nil
}

func (s *SQLStore) Create(ctx context.Context, nm models.NewMovie) (models.Movie, error) {
	query := `INSERT INTO movies (title, year, description, rating, ranking, review, img_url)
              VALUES (?, ?, ?, 0, 0, '', ?)`
	res, err := s.db.ExecContext(ctx, query, nm.Title, nm.Year, nm.Description, nm.ImgURL)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.Movie{}, fmt.Errorf("%w: %q", ErrDuplicateTitle, nm.Title)
		}
		return models.Movie{}, fmt.Errorf("insert movie: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Movie{}, fmt.Errorf("read new movie id: %w", err)
	}

	return models.Movie{
		ID:          id,
		Title:       nm.Title,
		Year:        nm.Year,
		Description: nm.Description,
		ImgURL:      nm.ImgURL,
	}, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (models.Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, rating float64, review string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE movies SET rating = ?, review = ? WHERE id = ?`, rating, review, id)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
