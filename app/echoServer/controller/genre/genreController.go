package genre

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bozdag05/site/model"
	genresvc "github.com/bozdag05/site/service/genre"
)

type Controller struct {
	Svc genresvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type createReq struct {
	Name string `json:"name" validate:"required"`
}

func isLibrarian(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleLibrarian
}

// POST /genre/create  (librarian)
func (h *Controller) Create(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	g, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		switch genresvc.Code(err) {
		case genresvc.ErrNameTaken:
			return c.JSON(http.StatusConflict, echo.Map{
				"message": "validation error",
				"errors":  echo.Map{"name": err.Error()},
			})
		case genresvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("genre create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, g)
}

// POST /genre/:genre_id/delete  (librarian)
func (h *Controller) Delete(c echo.Context) error {
	if !isLibrarian(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := strconv.ParseInt(c.Param("genre_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if genresvc.Code(err) == genresvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "genre not found"})
		}
		h.Log.Error("genre delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
