// model/book.go
package model

import (
	"strings"

	"github.com/samber/lo"
)

type Book struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	AuthorID *int64  `json:"author_id,omitempty"`
	Summary  string  `json:"summary,omitempty"`
	ISBN     string  `json:"isbn"`
	Photo    string  `json:"photo,omitempty"`
	Genres   []Genre `json:"genres,omitempty"`
}

// DisplayGenre lists up to the first three genre names, relationship order.
func (b Book) DisplayGenre() string {
	names := lo.Map(b.Genres, func(g Genre, _ int) string { return g.Name })
	if len(names) > 3 {
		names = names[:3]
	}
	return strings.Join(names, ", ")
}

// CreateBookReq is the create payload; ISBN must be unique store-wide.
// swagger:model CreateBookReq
type CreateBookReq struct {
	Title    string  `json:"title" validate:"required"`
	AuthorID *int64  `json:"author_id"`
	Summary  string  `json:"summary"`
	ISBN     string  `json:"isbn" validate:"required,max=13"`
	Photo    string  `json:"photo"`
	GenreIDs []int64 `json:"genre_ids"`
}

// UpdateBookReq mirrors the create payload for full edits.
// swagger:model UpdateBookReq
type UpdateBookReq struct {
	Title    string  `json:"title" validate:"required"`
	AuthorID *int64  `json:"author_id"`
	Summary  string  `json:"summary"`
	ISBN     string  `json:"isbn" validate:"required,max=13"`
	Photo    string  `json:"photo"`
	GenreIDs []int64 `json:"genre_ids"`
}
