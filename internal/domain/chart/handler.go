package chart

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odonto/odonto/internal/domain/odontogram"
)

type Handler struct {
	svc *odontogram.Service
}

func NewHandler(svc *odontogram.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/odontograms/:id/chart", h.GetChart)
}

// GetChart handles GET /odontograms/:id/chart and returns the derived cell
// state for both arches.
func (h *Handler) GetChart(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	store, err := h.svc.ConditionStore(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, Derive(store))
}
