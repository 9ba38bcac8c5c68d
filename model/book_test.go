package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayGenre(t *testing.T) {
	genres := func(names ...string) []Genre {
		out := make([]Genre, len(names))
		for i, n := range names {
			out[i] = Genre{ID: int64(i + 1), Name: n}
		}
		return out
	}

	cases := []struct {
		name   string
		genres []Genre
		want   string
	}{
		{"five genres truncate to three", genres("G1", "G2", "G3", "G4", "G5"), "G1, G2, G3"},
		{"exactly three", genres("G1", "G2", "G3"), "G1, G2, G3"},
		{"fewer than three", genres("Fantasy"), "Fantasy"},
		{"none", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Book{Genres: tc.genres}
			require.Equal(t, tc.want, b.DisplayGenre())
		})
	}
}

func TestAuthorDisplayName(t *testing.T) {
	a := Author{FirstName: "Fyodor", LastName: "Dostoevsky"}
	require.Equal(t, "Dostoevsky, Fyodor", a.DisplayName())
}
