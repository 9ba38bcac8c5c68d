// model/instance.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type LoanStatus string

const (
	StatusMaintenance LoanStatus = "maintenance"
	StatusOnLoan      LoanStatus = "on_loan"
	StatusAvailable   LoanStatus = "available"
	StatusReserved    LoanStatus = "reserved"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved:
		return true
	}
	return false
}

// ErrLoanState is returned when borrower and status disagree: a borrower may
// be set only while the copy is on loan, and an on-loan copy must have one.
var ErrLoanState = errors.New("borrower set without on_loan status, or on_loan without borrower")

// BookInstance is one physical, lendable copy of a Book. IDs are random UUIDs
// because copies are referenced externally and must not be guessable.
type BookInstance struct {
	ID         uuid.UUID  `json:"id"`
	BookID     int64      `json:"book_id"`
	Imprint    string     `json:"imprint"`
	DueBack    *time.Time `json:"due_back,omitempty"`
	BorrowerID *int64     `json:"borrower_id,omitempty"`
	Status     LoanStatus `json:"status"`
}

// IsOverdue reports whether the copy's due date has passed as of today.
// Computed on read, never stored. Comparison is at date precision.
func (bi BookInstance) IsOverdue(today time.Time) bool {
	if bi.DueBack == nil {
		return false
	}
	return dateOnly(*bi.DueBack).Before(dateOnly(today))
}

// ValidateLoanState enforces the borrower/status coupling on every write.
func (bi BookInstance) ValidateLoanState() error {
	if (bi.BorrowerID != nil) != (bi.Status == StatusOnLoan) {
		return ErrLoanState
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CreateInstanceReq creates a copy in the default maintenance state.
// swagger:model CreateInstanceReq
type CreateInstanceReq struct {
	BookID  int64  `json:"book_id" validate:"required,gt=0"`
	Imprint string `json:"imprint" validate:"required"`
}

// UpdateInstanceReq moves a copy through its lifecycle. Status, borrower and
// due date travel together so the loan-state invariant can be checked whole.
// swagger:model UpdateInstanceReq
type UpdateInstanceReq struct {
	Imprint    string     `json:"imprint" validate:"required"`
	Status     LoanStatus `json:"status" validate:"required"`
	DueBack    *time.Time `json:"due_back"`
	BorrowerID *int64     `json:"borrower_id"`
}
