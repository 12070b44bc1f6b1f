package snapshot

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler exposes snapshot upload and download over HTTP.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/odontograms/:id/snapshots", h.Upload)
	api.GET("/snapshots/:id", h.Download)
}

// Upload handles POST /odontograms/:id/snapshots with a raw image/png body.
func (h *Handler) Upload(c echo.Context) error {
	if ct := c.Request().Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/png") {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "snapshot upload requires Content-Type: image/png")
	}

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxSnapshotSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	meta, err := h.store.Put(c.Request().Context(), c.Param("id"), data)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, ErrNotPNG):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, meta)
}

// Download handles GET /snapshots/:id.
func (h *Handler) Download(c echo.Context) error {
	meta, data, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.Blob(http.StatusOK, meta.ContentType, data)
}
