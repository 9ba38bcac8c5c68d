package instancesvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bozdag05/site/model"
	instancerepo "github.com/bozdag05/site/repository/instance"
)

type ErrCode string

const (
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrLoanState ErrCode = "LOAN_STATE"
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
	// Create registers a new physical copy. Fresh copies always start in
	// maintenance with a random UUID.
	Create(ctx context.Context, req model.CreateInstanceReq) (*model.BookInstance, error)

	Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)

	// Update moves a copy through its lifecycle; every write passes the
	// borrower/status coupling check before it reaches the store.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateInstanceReq) (*model.BookInstance, error)
}

type service struct{ r instancerepo.Repo }

func New(r instancerepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req model.CreateInstanceReq) (*model.BookInstance, error) {
	bi := &model.BookInstance{
		ID:      uuid.New(),
		BookID:  req.BookID,
		Imprint: req.Imprint,
		Status:  model.StatusMaintenance,
	}
	if err := bi.ValidateLoanState(); err != nil {
		return nil, wrap(ErrLoanState, err.Error())
	}
	if err := s.r.Create(ctx, bi); err != nil {
		if isUnknownBook(err) {
			return nil, wrap(ErrNotFound, "book not found")
		}
		return nil, err
	}
	return bi, nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	bi, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrap(ErrNotFound, "book instance not found")
		}
		return nil, err
	}
	return bi, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req model.UpdateInstanceReq) (*model.BookInstance, error) {
	if !req.Status.Valid() {
		return nil, wrap(ErrBadInput, "unknown status")
	}

	bi := &model.BookInstance{
		ID:         id,
		Imprint:    req.Imprint,
		DueBack:    req.DueBack,
		BorrowerID: req.BorrowerID,
		Status:     req.Status,
	}
	if err := bi.ValidateLoanState(); err != nil {
		return nil, wrap(ErrLoanState, err.Error())
	}

	current, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrap(ErrNotFound, "book instance not found")
		}
		return nil, err
	}
	bi.BookID = current.BookID

	found, err := s.r.Update(ctx, bi)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, wrap(ErrNotFound, "book instance not found")
	}
	return bi, nil
}

func isUnknownBook(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
