package genresvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bozdag05/site/model"
	genrerepo "github.com/bozdag05/site/repository/genre"
)

type ErrCode string

const (
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrNameTaken ErrCode = "NAME_TAKEN"
	ErrBadInput  ErrCode = "BAD_INPUT"
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
	Create(ctx context.Context, name string) (*model.Genre, error)

	// Delete removes an empty genre. Genres still attached to books are
	// detached by the join table's cascade, so deletion always proceeds
	// once the genre exists.
	Delete(ctx context.Context, id int64) error
}

type service struct{ r genrerepo.Repo }

func New(r genrerepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name string) (*model.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, wrap(ErrBadInput, "genre name is required")
	}

	id, err := s.r.Create(ctx, name)
	if err != nil {
		if isDuplicateName(err) {
			return nil, wrap(ErrNameTaken, "a genre with this name already exists")
		}
		return nil, err
	}
	return &model.Genre{ID: id, Name: name}, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	found, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return wrap(ErrNotFound, "genre not found")
	}
	return nil
}

func isDuplicateName(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
