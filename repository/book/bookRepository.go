package bookrepo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/bozdag05/site/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book, genreIDs []int64) error
	Update(ctx context.Context, b *model.Book, genreIDs []int64) (bool, error)
	List(ctx context.Context) ([]model.Book, error)
	ListByGenre(ctx context.Context, genreID int64) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountInstances(ctx context.Context, bookID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Book, genreIDs []int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const ins = `
		INSERT INTO books (title, author_id, summary, isbn, photo)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`
	if err = tx.QueryRowContext(ctx, ins, b.Title, b.AuthorID, b.Summary, b.ISBN, b.Photo).Scan(&b.ID); err != nil {
		return err
	}
	if err = replaceGenres(ctx, tx, b.ID, genreIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repo) Update(ctx context.Context, b *model.Book, genreIDs []int64) (found bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const upd = `
		UPDATE books
		SET title = $2, author_id = $3, summary = $4, isbn = $5, photo = $6
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, upd, b.ID, b.Title, b.AuthorID, b.Summary, b.ISBN, b.Photo)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		_ = tx.Rollback()
		return false, nil
	}
	if err = replaceGenres(ctx, tx, b.ID, genreIDs); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func replaceGenres(ctx context.Context, tx *sql.Tx, bookID int64, genreIDs []int64) error {
	const clear = `DELETE FROM book_genres WHERE book_id = $1`
	if _, err := tx.ExecContext(ctx, clear, bookID); err != nil {
		return errors.Wrap(err, "clear book genres")
	}
	const ins = `INSERT INTO book_genres (book_id, genre_id) VALUES ($1,$2)`
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx, ins, bookID, gid); err != nil {
			return errors.Wrap(err, "insert book genre")
		}
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author_id, b.summary, b.isbn, b.photo
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		ORDER BY a.last_name NULLS LAST, a.first_name, b.id`
	return r.queryBooks(ctx, q)
}

func (r *repo) ListByGenre(ctx context.Context, genreID int64) ([]model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author_id, b.summary, b.isbn, b.photo
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE bg.genre_id = $1
		ORDER BY a.last_name NULLS LAST, a.first_name, b.id`
	return r.queryBooks(ctx, q, genreID)
}

func (r *repo) queryBooks(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query books")
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.Summary, &b.ISBN, &b.Photo); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachGenres(ctx, out)
}

// attachGenres loads the m2m genre sets for a page of books in one query.
func (r *repo) attachGenres(ctx context.Context, books []model.Book) ([]model.Book, error) {
	if len(books) == 0 {
		return books, nil
	}
	const q = `
		SELECT bg.book_id, g.id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		ORDER BY bg.book_id, g.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "query book genres")
	}
	defer rows.Close()

	byBook := make(map[int64][]model.Genre)
	for rows.Next() {
		var bookID int64
		var g model.Genre
		if err := rows.Scan(&bookID, &g.ID, &g.Name); err != nil {
			return nil, errors.Wrap(err, "scan book genre")
		}
		byBook[bookID] = append(byBook[bookID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Genres = byBook[books[i].ID]
	}
	return books, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT id, title, author_id, summary, isbn, photo
		FROM books
		WHERE id = $1`
	var b model.Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Title, &b.AuthorID, &b.Summary, &b.ISBN, &b.Photo); err != nil {
		return nil, err
	}

	const gq = `
		SELECT g.id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = $1
		ORDER BY g.id`
	rows, err := r.db.QueryContext(ctx, gq, id)
	if err != nil {
		return nil, errors.Wrap(err, "query genres for book")
	}
	defer rows.Close()
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, errors.Wrap(err, "scan genre")
		}
		b.Genres = append(b.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM books WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM books`
	var n int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count books")
	}
	return n, nil
}

func (r *repo) CountInstances(ctx context.Context, bookID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM book_instances WHERE book_id = $1`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, bookID).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count instances")
	}
	return n, nil
}
