package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kotresh75/Aws-Project/app/echoServer/jwtx"
	"github.com/kotresh75/Aws-Project/model"
	requestsvc "github.com/kotresh75/Aws-Project/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	out, err := h.Svc.Create(c.Request().Context(), email, req.BookID)
	if err != nil {
		return h.fail(c, "request create", err)
	}

	msg := "Request submitted!"
	if out.Status == model.RequestWaitlisted {
		msg = "Added to Waitlist!"
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": msg,
		"request": out,
	})
}

// POST /v1/requests/:id/:action with action in approve|reject|return
func (h *Controller) Transition(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	action := model.RequestAction(c.Param("action"))
	switch action {
	case model.ActionApprove, model.ActionReject, model.ActionReturn:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown action"})
	}
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	out, err := h.Svc.Transition(c.Request().Context(), email, id, action)
	if err != nil {
		return h.fail(c, "request transition", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"request": out})
}

// GET /v1/requests (staff)
func (h *Controller) ListAll(c echo.Context) error {
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListAll(c.Request().Context(), email)
	if err != nil {
		return h.fail(c, "request list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/requests/my
func (h *Controller) ListMine(c echo.Context) error {
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListMine(c.Request().Context(), email)
	if err != nil {
		return h.fail(c, "request list mine", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// fail maps engine error codes onto HTTP statuses. Stock exhaustion and
// duplicate claims get distinct conflict messages so callers can tell them
// apart from missing records and role failures.
func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch requestsvc.Code(err) {
	case requestsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case requestsvc.ErrUnauthorized:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case requestsvc.ErrDuplicateClaim:
		return c.JSON(http.StatusConflict, echo.Map{"message": "you already have a pending request or waitlist entry for this book"})
	case requestsvc.ErrOutOfStock:
		return c.JSON(http.StatusConflict, echo.Map{"message": "cannot approve: book is out of stock"})
	case requestsvc.ErrInvalidTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": "request already processed"})
	case requestsvc.ErrStoreUnavailable:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "temporarily unavailable, retry later"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
