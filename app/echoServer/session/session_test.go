package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func ctxWithCookie(t *testing.T, value string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: visitCookie, Value: value})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestVisitCount_FirstVisit(t *testing.T) {
	c, rec := ctxWithCookie(t, "")

	require.Equal(t, 0, VisitCount(c))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, visitCookie, cookies[0].Name)
	require.Equal(t, "1", cookies[0].Value)
}

func TestVisitCount_Increments(t *testing.T) {
	c, rec := ctxWithCookie(t, "4")

	require.Equal(t, 4, VisitCount(c))
	require.Equal(t, "5", rec.Result().Cookies()[0].Value)
}

func TestVisitCount_GarbageResets(t *testing.T) {
	c, rec := ctxWithCookie(t, "not-a-number")

	require.Equal(t, 0, VisitCount(c))
	require.Equal(t, "1", rec.Result().Cookies()[0].Value)
}
