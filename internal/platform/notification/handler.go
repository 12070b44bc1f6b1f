package notification

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the toast feed over HTTP.
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/toasts", h.ListActive)
	api.POST("/toasts/:id/dismiss", h.Dismiss)
}

// ListActive handles GET /toasts.
func (h *Handler) ListActive(c echo.Context) error {
	toasts := h.manager.Active()
	if toasts == nil {
		toasts = []Toast{}
	}
	return c.JSON(http.StatusOK, toasts)
}

// Dismiss handles POST /toasts/:id/dismiss.
func (h *Handler) Dismiss(c echo.Context) error {
	if err := h.manager.Dismiss(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
