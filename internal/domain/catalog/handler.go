package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the read-only legend view of the catalog.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/legend", h.GetLegend)
}

// legendResponse is the full catalog as shown to the operator.
type legendResponse struct {
	Conditions []ConditionEntry `json:"conditions"`
	Statuses   []StatusEntry    `json:"statuses"`
	Surfaces   []SurfaceEntry   `json:"surfaces"`
}

// GetLegend handles GET /legend.
func (h *Handler) GetLegend(c echo.Context) error {
	return c.JSON(http.StatusOK, legendResponse{
		Conditions: Conditions,
		Statuses:   Statuses,
		Surfaces:   Surfaces,
	})
}
