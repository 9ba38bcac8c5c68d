package loansvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bozdag05/site/model"
	instancerepo "github.com/bozdag05/site/repository/instance"
)

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrForbidden  ErrCode = "FORBIDDEN"
	ErrDatePast   ErrCode = "DATE_PAST"
	ErrDateTooFar ErrCode = "DATE_TOO_FAR"
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

// Caller identifies the requesting user for capability checks.
type Caller struct {
	UserID int64
	Role   string
}

// CanMarkReturned gates the renewal workflow; librarians hold the grant.
func (c Caller) CanMarkReturned() bool { return c.Role == model.RoleLibrarian }

// Filter re-exports the repository filter for the staff listing.
type Filter = instancerepo.Filter

type Repo interface {
	Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time) (bool, error)
	ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BookInstance, error)
	ListAll(ctx context.Context, f Filter) ([]model.BookInstance, error)
}

type Service interface {
	// MyLoans lists the caller's on-loan copies, earliest due date first.
	MyLoans(ctx context.Context, userID int64) ([]model.BookInstance, error)

	// AllInstances is the staff listing over every copy. It deliberately does
	// not mix in a caller-scoped sublist; MyLoans covers that separately.
	AllInstances(ctx context.Context, f Filter) ([]model.BookInstance, error)

	// Renew extends a copy's due date. Capability first, lookup second,
	// date validation third; nothing is written until all three pass.
	Renew(ctx context.Context, caller Caller, instanceID uuid.UUID, newDate time.Time) (*model.BookInstance, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

// NewWithClock pins "today" for tests.
func NewWithClock(r Repo, now func() time.Time) Service { return &service{r: r, now: now} }

func (s *service) MyLoans(ctx context.Context, userID int64) ([]model.BookInstance, error) {
	return s.r.ListByBorrower(ctx, userID)
}

func (s *service) AllInstances(ctx context.Context, f Filter) ([]model.BookInstance, error) {
	return s.r.ListAll(ctx, f)
}

func (s *service) Renew(ctx context.Context, caller Caller, instanceID uuid.UUID, newDate time.Time) (*model.BookInstance, error) {
	if !caller.CanMarkReturned() {
		return nil, wrap(ErrForbidden, "renewal requires the can-mark-returned grant")
	}

	bi, err := s.r.Detail(ctx, instanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrap(ErrNotFound, "book instance not found")
		}
		return nil, err
	}

	if err := ValidateRenewalDate(s.now(), newDate); err != nil {
		return nil, err
	}

	due := dateOnly(newDate)
	found, err := s.r.UpdateDueBack(ctx, instanceID, due)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, wrap(ErrNotFound, "book instance not found")
	}
	bi.DueBack = &due
	return bi, nil
}
