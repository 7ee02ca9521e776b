package sqlite

import (
	"context"
	"time"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/pagex"
)

type directorsRepo struct {
	q querier
}

const directorColumns = `id, name, dob, nationality, created_at, updated_at`

func (r *directorsRepo) ListDirectors(ctx context.Context, page pagex.PageRequest) ([]domain.Director, error) {
	page = page.Normalize()

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+directorColumns+` FROM directors ORDER BY id LIMIT ? OFFSET ?`,
		page.Take, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Director
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *directorsRepo) GetDirectorByID(ctx context.Context, id int64) (domain.Director, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+directorColumns+` FROM directors WHERE id = ?`, id)
	return scanDirector(row)
}

func (r *directorsRepo) CreateDirector(ctx context.Context, d domain.Director) (int64, error) {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO directors (name, dob, nationality, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.Name, d.DOB, d.Nationality, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *directorsRepo) UpdateDirector(ctx context.Context, d domain.Director) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE directors SET name = ?, dob = ?, nationality = ?, updated_at = ?
		 WHERE id = ?`,
		d.Name, d.DOB, d.Nationality, time.Now().UTC(), d.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *directorsRepo) DeleteDirector(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM directors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanDirector(row scanner) (domain.Director, error) {
	var d domain.Director
	err := row.Scan(&d.ID, &d.Name, &d.DOB, &d.Nationality, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Director{}, mapNotFound(err)
	}
	return d, nil
}

func requireAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
