// model/author.go
package model

import (
	"fmt"
	"time"
)

type Author struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Photo       string     `json:"photo,omitempty"`
	Biography   string     `json:"biography,omitempty"`
}

// DisplayName is the canonical "LastName, FirstName" identity.
func (a Author) DisplayName() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}

// CreateAuthorReq accepts every author attribute; only the names are required.
// swagger:model CreateAuthorReq
type CreateAuthorReq struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
	Photo       string     `json:"photo"`
	Biography   string     `json:"biography"`
}

// UpdateAuthorReq covers the editable subset: names and life dates.
// swagger:model UpdateAuthorReq
type UpdateAuthorReq struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
}
