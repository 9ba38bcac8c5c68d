package loan

import "time"

// RenewReq carries the candidate due date for a renewal.
type RenewReq struct {
	RenewalDate time.Time `json:"renewal_date" validate:"required"`
}
