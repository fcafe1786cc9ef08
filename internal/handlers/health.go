package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/snake_catalogue/pkg/db"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
)

type HealthHandler struct {
	DB *gorm.DB
}

func (h *HealthHandler) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	if err := db.Ping(ctx, h.DB); err != nil {
		logging.FromContext(ctx).Error("readiness_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "database is unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "online"})
}
