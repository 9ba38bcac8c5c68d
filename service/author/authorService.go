package authorsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bozdag05/site/model"
	authorrepo "github.com/bozdag05/site/repository/author"
)

type ErrCode string

const ErrNotFound ErrCode = "NOT_FOUND"

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
	Create(ctx context.Context, req model.CreateAuthorReq) (*model.Author, error)
	Update(ctx context.Context, id int64, req model.UpdateAuthorReq) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r authorrepo.Repo }

func New(r authorrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req model.CreateAuthorReq) (*model.Author, error) {
	// no duplicate detection: two authors may share a name
	a := &model.Author{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		DateOfDeath: req.DateOfDeath,
		Photo:       req.Photo,
		Biography:   req.Biography,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateAuthorReq) (*model.Author, error) {
	a := &model.Author{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		DateOfDeath: req.DateOfDeath,
	}
	found, err := s.r.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, wrap(ErrNotFound, "author not found")
	}
	return a, nil
}

// Delete applies the author cascade policy: book references to the author are
// nulled, never cascaded. The opposite choice for books (RESTRICT on copies)
// lives in the book service; each rule changes in exactly one place.
func (s *service) Delete(ctx context.Context, id int64) error {
	found, err := s.r.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return wrap(ErrNotFound, "author not found")
		}
		return err
	}
	if !found {
		return wrap(ErrNotFound, "author not found")
	}
	return nil
}
