package sqlite

import (
	"context"
	"time"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/pkg/pagex"
)

type genresRepo struct {
	q querier
}

func genreColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func (r *genresRepo) ListGenres(ctx context.Context, page pagex.PageRequest) ([]domain.Genre, error) {
	page = page.Normalize()

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+genreColumns(`g`)+` FROM genres g ORDER BY g.id LIMIT ? OFFSET ?`,
		page.Take, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *genresRepo) GetGenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+genreColumns(`g`)+` FROM genres g WHERE g.id = ?`, id)
	return scanGenre(row)
}

func (r *genresRepo) GetGenresByIDs(ctx context.Context, ids []int64) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+genreColumns(`g`)+` FROM genres g WHERE g.id IN (`+placeholders(len(args))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *genresRepo) CreateGenre(ctx context.Context, g domain.Genre) (int64, error) {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO genres (name, created_at, updated_at) VALUES (?, ?, ?)`,
		g.Name, now, now)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *genresRepo) UpdateGenre(ctx context.Context, g domain.Genre) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE genres SET name = ?, updated_at = ? WHERE id = ?`,
		g.Name, time.Now().UTC(), g.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

func (r *genresRepo) DeleteGenre(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanGenre(row scanner) (domain.Genre, error) {
	var g domain.Genre
	err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.Genre{}, mapNotFound(err)
	}
	return g, nil
}
