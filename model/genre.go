// model/genre.go
package model

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
