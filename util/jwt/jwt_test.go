package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	token, err := Issue("topsecret", 42, "librarian", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAuth("Bearer "+token, "topsecret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "librarian", claims["role"])
}

func TestParseAuthRejectsWrongSecret(t *testing.T) {
	token, err := Issue("topsecret", 1, "user", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+token, "othersecret")
	require.Error(t, err)
}

func TestParseAuthRejectsEmptyHeader(t *testing.T) {
	_, err := ParseAuth("", "topsecret")
	require.Error(t, err)
}
