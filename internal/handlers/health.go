package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enviador/messaging-gateway/internal/models"
)

// Health answers the liveness probe with the fixed status payload. It has no
// dependencies and cannot fail.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Healthy())
}
