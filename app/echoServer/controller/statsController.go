// app/echoServer/controller/statsController.go
package controller

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	statsvc "github.com/kotresh75/Aws-Project/service/stats"
)

type StatsController struct {
	Svc statsvc.Service
	Log *slog.Logger
}

// GET /v1/stats
func (h *StatsController) Snapshot(c echo.Context) error {
	out, err := h.Svc.Snapshot(c.Request().Context())
	if err != nil {
		h.Log.Error("stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
