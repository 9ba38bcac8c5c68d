package genrerepo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/bozdag05/site/model"
)

type Repo interface {
	Create(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]model.Genre, error)
	Detail(ctx context.Context, id int64) (*model.Genre, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, name string) (int64, error) {
	const q = `INSERT INTO genres (name) VALUES ($1) RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert genre")
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Genre, error) {
	const q = `SELECT id, name FROM genres ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "list genres")
	}
	defer rows.Close()

	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, errors.Wrap(err, "scan genre")
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Genre, error) {
	const q = `SELECT id, name FROM genres WHERE id = $1`
	var g model.Genre
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	// membership rows go with it (ON DELETE CASCADE on book_genres)
	const q = `DELETE FROM genres WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, errors.Wrap(err, "delete genre")
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
