package loan

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bozdag05/site/model"
	loansvc "github.com/bozdag05/site/service/loan"
)

type Controller struct {
	Svc loansvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func caller(c echo.Context) loansvc.Caller {
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)
	return loansvc.Caller{UserID: uid, Role: role}
}

// GET /mybooks
func (h *Controller) MyBooks(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	loans, err := h.Svc.MyLoans(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my loans", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": withOverdue(loans)})
}

// GET /list  (staff)
func (h *Controller) ListInstances(c echo.Context) error {
	if !caller(c).CanMarkReturned() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	var f loansvc.Filter
	if s := c.QueryParam("status"); s != "" {
		status := model.LoanStatus(s)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown status"})
		}
		f.Status = &status
	}

	rows, err := h.Svc.AllInstances(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("instance list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": withOverdue(rows)})
}

// GET /book/:instance_id/renew
// Returns the instance with a proposed renewal date, three weeks out.
func (h *Controller) RenewProposal(c echo.Context) error {
	if !caller(c).CanMarkReturned() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	id, err := uuid.Parse(c.Param("instance_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	proposal := loansvc.ProposeRenewalDate(time.Now())
	return c.JSON(http.StatusOK, echo.Map{
		"instance_id":  id,
		"renewal_date": proposal,
	})
}

// POST /book/:instance_id/renew
func (h *Controller) Renew(c echo.Context) error {
	id, err := uuid.Parse(c.Param("instance_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req RenewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"renewal_date": "required"},
		})
	}

	bi, err := h.Svc.Renew(c.Request().Context(), caller(c), id, req.RenewalDate)
	if err != nil {
		switch loansvc.Code(err) {
		case loansvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case loansvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book instance not found"})
		case loansvc.ErrDatePast, loansvc.ErrDateTooFar:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "validation error",
				"errors":  echo.Map{"renewal_date": err.Error()},
			})
		default:
			h.Log.Error("renew", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": instanceView(*bi)})
}

type instanceRow struct {
	model.BookInstance
	IsOverdue bool `json:"is_overdue"`
}

func instanceView(bi model.BookInstance) instanceRow {
	return instanceRow{BookInstance: bi, IsOverdue: bi.IsOverdue(time.Now())}
}

func withOverdue(rows []model.BookInstance) []instanceRow {
	out := make([]instanceRow, len(rows))
	for i, bi := range rows {
		out[i] = instanceView(bi)
	}
	return out
}
