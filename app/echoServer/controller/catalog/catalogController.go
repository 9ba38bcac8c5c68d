package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bozdag05/site/app/echoServer/session"
	catalogsvc "github.com/bozdag05/site/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	Log *slog.Logger
}

// GET /
func (h *Controller) Index(c echo.Context) error {
	s, err := h.Svc.Summary(c.Request().Context())
	if err != nil {
		h.Log.Error("catalog summary", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"num_books":               s.NumBooks,
		"num_instances":           s.NumInstances,
		"num_instances_available": s.NumInstancesAvailable,
		"num_authors":             s.NumAuthors,
		"num_visits":              session.VisitCount(c),
	})
}

// GET /books
func (h *Controller) Books(c echo.Context) error {
	l, err := h.Svc.ListBooks(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, l)
}

// GET /books/genre/:genre_id
func (h *Controller) Genre(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("genre_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	l, err := h.Svc.ListByGenre(c.Request().Context(), id)
	if err != nil {
		if catalogsvc.Code(err) == catalogsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "genre not found"})
		}
		h.Log.Error("genre list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, l)
}

// GET /authors
func (h *Controller) Authors(c echo.Context) error {
	authors, err := h.Svc.ListAuthors(c.Request().Context())
	if err != nil {
		h.Log.Error("author list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"authors": authors})
}

// GET /author/:author_id
func (h *Controller) AuthorDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("author_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	a, err := h.Svc.AuthorDetail(c.Request().Context(), id)
	if err != nil {
		if catalogsvc.Code(err) == catalogsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "author not found"})
		}
		h.Log.Error("author detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, a)
}

// GET /book/:book_id
func (h *Controller) BookDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	d, err := h.Svc.BookDetail(c.Request().Context(), id)
	if err != nil {
		if catalogsvc.Code(err) == catalogsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"book":          d.Book,
		"display_genre": d.Book.DisplayGenre(),
		"genres":        d.Genres,
	})
}
