// app/echoServer/session/session.go
package session

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const visitCookie = "num_visits"

// VisitCount reads the per-session visit counter and bumps the cookie.
// First visit initializes to 0, each later request increments; the returned
// value is the count before this visit, matching the landing page.
func VisitCount(c echo.Context) int {
	visits := 0
	if ck, err := c.Cookie(visitCookie); err == nil {
		if n, err := strconv.Atoi(ck.Value); err == nil && n >= 0 {
			visits = n
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     visitCookie,
		Value:    strconv.Itoa(visits + 1),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return visits
}
