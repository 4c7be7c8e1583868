package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kotresh75/Aws-Project/app/echoServer/jwtx"
	usersvc "github.com/kotresh75/Aws-Project/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// GET /v1/users/students (staff)
func (h *Controller) ListStudents(c echo.Context) error {
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListStudents(c.Request().Context(), email)
	if err != nil {
		return h.fail(c, "student list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/users/:email (staff)
func (h *Controller) Remove(c echo.Context) error {
	actor, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	target := c.Param("email")
	if target == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid email"})
	}
	if err := h.Svc.RemoveStudent(c.Request().Context(), actor, target); err != nil {
		return h.fail(c, "student remove", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student removed"})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, usersvc.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": "staff only"})
	case errors.Is(err, usersvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
