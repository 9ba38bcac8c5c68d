package authorrepo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/bozdag05/site/model"
)

type Repo interface {
	Create(ctx context.Context, a *model.Author) error
	List(ctx context.Context) ([]model.Author, error)
	Detail(ctx context.Context, id int64) (*model.Author, error)
	Update(ctx context.Context, a *model.Author) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Delete nulls the author reference on every book first, then removes
	// the author, in one transaction. The caller picks the policy; this is
	// the SET NULL leg (books survive their author).
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, a *model.Author) error {
	const q = `
		INSERT INTO authors (first_name, last_name, date_of_birth, date_of_death, photo, biography)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath, a.Photo, a.Biography,
	).Scan(&a.ID)
	return errors.Wrap(err, "insert author")
}

func (r *repo) List(ctx context.Context) ([]model.Author, error) {
	const q = `
		SELECT id, first_name, last_name, date_of_birth, date_of_death, photo, biography
		FROM authors
		ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	defer rows.Close()

	var out []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath, &a.Photo, &a.Biography); err != nil {
			return nil, errors.Wrap(err, "scan author")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Author, error) {
	const q = `
		SELECT id, first_name, last_name, date_of_birth, date_of_death, photo, biography
		FROM authors
		WHERE id = $1`
	var a model.Author
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath, &a.Photo, &a.Biography,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) Update(ctx context.Context, a *model.Author) (bool, error) {
	const q = `
		UPDATE authors
		SET first_name = $2, last_name = $3, date_of_birth = $4, date_of_death = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, a.ID, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath)
	if err != nil {
		return false, errors.Wrap(err, "update author")
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM authors`
	var n int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count authors")
	}
	return n, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (found bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const nullRefs = `UPDATE books SET author_id = NULL WHERE author_id = $1`
	if _, err = tx.ExecContext(ctx, nullRefs, id); err != nil {
		return false, errors.Wrap(err, "null book author refs")
	}

	const del = `DELETE FROM authors WHERE id = $1`
	res, err := tx.ExecContext(ctx, del, id)
	if err != nil {
		return false, errors.Wrap(err, "delete author")
	}
	aff, _ := res.RowsAffected()
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return aff > 0, nil
}
