package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func day(t time.Time) *time.Time { return &t }

func TestIsOverdue(t *testing.T) {
	today := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name    string
		dueBack *time.Time
		want    bool
	}{
		{"due yesterday", day(today.AddDate(0, 0, -1)), true},
		{"due today", day(today), false},
		{"due today earlier hour", day(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)), false},
		{"due tomorrow", day(today.AddDate(0, 0, 1)), false},
		{"no due date", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bi := BookInstance{DueBack: tc.dueBack}
			require.Equal(t, tc.want, bi.IsOverdue(today))
		})
	}
}

func TestValidateLoanState(t *testing.T) {
	borrower := int64(7)

	cases := []struct {
		name     string
		status   LoanStatus
		borrower *int64
		wantErr  bool
	}{
		{"on loan with borrower", StatusOnLoan, &borrower, false},
		{"available without borrower", StatusAvailable, nil, false},
		{"maintenance without borrower", StatusMaintenance, nil, false},
		{"reserved without borrower", StatusReserved, nil, false},
		{"borrower without on_loan", StatusAvailable, &borrower, true},
		{"on_loan without borrower", StatusOnLoan, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bi := BookInstance{
				ID:         uuid.New(),
				BookID:     1,
				Status:     tc.status,
				BorrowerID: tc.borrower,
			}
			err := bi.ValidateLoanState()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrLoanState)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoanStatusValid(t *testing.T) {
	for _, s := range []LoanStatus{StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved} {
		require.True(t, s.Valid())
	}
	require.False(t, LoanStatus("lost").Valid())
	require.False(t, LoanStatus("").Valid())
}
