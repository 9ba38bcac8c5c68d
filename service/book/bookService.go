package booksvc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bozdag05/site/model"
	bookrepo "github.com/bozdag05/site/repository/book"
	openlibraryrepo "github.com/bozdag05/site/repository/openlibrary"
)

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrISBNTaken    ErrCode = "ISBN_TAKEN"
	ErrHasInstances ErrCode = "HAS_INSTANCES"
	ErrBadInput     ErrCode = "BAD_INPUT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	Create(ctx context.Context, req model.CreateBookReq) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r    bookrepo.Repo
	meta openlibraryrepo.Repo // optional, may be nil
	log  *slog.Logger
}

func New(r bookrepo.Repo, meta openlibraryrepo.Repo, log *slog.Logger) Service {
	return &service{r: r, meta: meta, log: log}
}

func (s *service) Create(ctx context.Context, req model.CreateBookReq) (*model.Book, error) {
	isbn := strings.TrimSpace(req.ISBN)
	if req.Title == "" || isbn == "" || len(isbn) > 13 {
		return nil, wrap(ErrBadInput, "invalid payload")
	}

	b := &model.Book{
		Title:    req.Title,
		AuthorID: req.AuthorID,
		Summary:  req.Summary,
		ISBN:     isbn,
		Photo:    req.Photo,
	}
	s.prefillMeta(b)

	if err := s.r.Create(ctx, b, req.GenreIDs); err != nil {
		if isUniqueISBN(err) {
			return nil, wrap(ErrISBNTaken, "a book with this ISBN already exists")
		}
		return nil, err
	}
	created, err := s.r.Detail(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error) {
	isbn := strings.TrimSpace(req.ISBN)
	if req.Title == "" || isbn == "" || len(isbn) > 13 {
		return nil, wrap(ErrBadInput, "invalid payload")
	}

	b := &model.Book{
		ID:       id,
		Title:    req.Title,
		AuthorID: req.AuthorID,
		Summary:  req.Summary,
		ISBN:     isbn,
		Photo:    req.Photo,
	}
	found, err := s.r.Update(ctx, b, req.GenreIDs)
	if err != nil {
		if isUniqueISBN(err) {
			return nil, wrap(ErrISBNTaken, "a book with this ISBN already exists")
		}
		return nil, err
	}
	if !found {
		return nil, wrap(ErrNotFound, "book not found")
	}
	return s.r.Detail(ctx, id)
}

// Delete applies the book cascade policy: a book with existing copies is
// never deleted, the request fails with a conflict. The database RESTRICT
// constraint backs this up.
func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.r.CountInstances(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return wrap(ErrHasInstances, "book still has copies")
	}

	found, err := s.r.Delete(ctx, id)
	if err != nil {
		if isRestricted(err) {
			return wrap(ErrHasInstances, "book still has copies")
		}
		return err
	}
	if !found {
		return wrap(ErrNotFound, "book not found")
	}
	return nil
}

// prefillMeta fills empty summary/photo from Open Library. Lookup failures
// only cost the prefill, never the create.
func (s *service) prefillMeta(b *model.Book) {
	if s.meta == nil || (b.Summary != "" && b.Photo != "") {
		return
	}
	meta, err := s.meta.LookupISBN(b.ISBN)
	if err != nil {
		if s.log != nil {
			s.log.Warn("isbn metadata lookup failed", "isbn", b.ISBN, "err", err)
		}
		return
	}
	if b.Summary == "" {
		b.Summary = meta.Summary
	}
	if b.Photo == "" {
		b.Photo = meta.CoverURL
	}
}

func isUniqueISBN(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn")
}

func isRestricted(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
