package loansvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC)

func TestValidateRenewalDate_Bounds(t *testing.T) {
	cases := []struct {
		name      string
		candidate time.Time
		wantCode  ErrCode
	}{
		{"today is valid", today, ""},
		{"four weeks out is valid", today.AddDate(0, 0, 28), ""},
		{"midway is valid", today.AddDate(0, 0, 10), ""},
		{"yesterday is in the past", today.AddDate(0, 0, -1), ErrDatePast},
		{"29 days out is too far", today.AddDate(0, 0, 29), ErrDateTooFar},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRenewalDate(today, tc.candidate)
			if tc.wantCode == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Equal(t, tc.wantCode, Code(err))
			}
		})
	}
}

func TestValidateRenewalDate_Messages(t *testing.T) {
	err := ValidateRenewalDate(today, today.AddDate(0, 0, -3))
	require.EqualError(t, err, "renewal date is in the past.")

	err = ValidateRenewalDate(today, today.AddDate(0, 0, 40))
	require.EqualError(t, err, "renewal date is more than 4 weeks in the future.")
}

func TestValidateRenewalDate_IgnoresTimeOfDay(t *testing.T) {
	// candidate earlier in the day than "now" is still today, not the past
	candidate := time.Date(2024, 5, 15, 0, 30, 0, 0, time.UTC)
	require.NoError(t, ValidateRenewalDate(today, candidate))
}

func TestProposeRenewalDate(t *testing.T) {
	got := ProposeRenewalDate(today)
	require.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), got)
}
