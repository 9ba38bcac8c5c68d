package loansvc

import "time"

const (
	// Proposals default to three weeks out; four weeks is the hard ceiling.
	proposalLead   = 21 * 24 * time.Hour
	renewalHorizon = 28
	msgDatePast    = "renewal date is in the past."
	msgDateTooFar  = "renewal date is more than 4 weeks in the future."
)

// ProposeRenewalDate is the pre-populated candidate: today plus three weeks.
func ProposeRenewalDate(today time.Time) time.Time {
	return dateOnly(today).Add(proposalLead)
}

// ValidateRenewalDate accepts candidate iff today <= candidate <= today+4w,
// both endpoints inclusive, comparing at date precision.
func ValidateRenewalDate(today, candidate time.Time) error {
	t := dateOnly(today)
	c := dateOnly(candidate)

	if c.Before(t) {
		return wrap(ErrDatePast, msgDatePast)
	}
	if c.After(t.AddDate(0, 0, renewalHorizon)) {
		return wrap(ErrDateTooFar, msgDateTooFar)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
