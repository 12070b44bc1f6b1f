package capture

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odonto/odonto/internal/domain/catalog"
	"github.com/odonto/odonto/internal/domain/odontogram"
	"github.com/odonto/odonto/internal/platform/notification"
)

// SurfaceSource supplies the surfaces already attached to a tooth, used to
// seed a newly opened workflow.
type SurfaceSource interface {
	AttachedSurfaces(ctx context.Context, odontogramID uuid.UUID, tooth int) ([]string, error)
}

type Handler struct {
	manager  *Manager
	saver    Saver
	surfaces SurfaceSource
	notifier notification.Notifier
}

func NewHandler(manager *Manager, saver Saver, surfaces SurfaceSource, notifier notification.Notifier) *Handler {
	return &Handler{manager: manager, saver: saver, surfaces: surfaces, notifier: notifier}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/capture", h.OpenSession)
	api.GET("/capture/:id", h.GetSession)
	api.POST("/capture/:id/surfaces/:surface/toggle", h.ToggleSurface)
	api.PUT("/capture/:id", h.UpdateFields)
	api.POST("/capture/:id/submit", h.Submit)
	api.DELETE("/capture/:id", h.CancelSession)
}

type openRequest struct {
	OdontogramID  uuid.UUID `json:"odontogram_id"`
	ToothNumber   int       `json:"tooth_number"`
	RangeEndTooth *int      `json:"range_end_tooth,omitempty"`
}

// OpenSession handles POST /capture: a tooth cell click opens the modal
// scoped to that tooth, pre-seeded with its attached surfaces.
func (h *Handler) OpenSession(c echo.Context) error {
	var req openRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !catalog.ValidToothNumber(req.ToothNumber) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tooth number")
	}

	attached, err := h.surfaces.AttachedSurfaces(c.Request().Context(), req.OdontogramID, req.ToothNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defaults := make([]catalog.Surface, len(attached))
	for i, s := range attached {
		defaults[i] = catalog.Surface(s)
	}

	w := Open(req.OdontogramID, req.ToothNumber, defaults)
	if req.RangeEndTooth != nil {
		w.RangeEndTooth = req.RangeEndTooth
	}
	h.manager.Track(w)
	return c.JSON(http.StatusCreated, w)
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.manager.Get(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) ToggleSurface(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.manager.Mutate(id, func(w *Workflow) error {
		return w.ToggleSurface(catalog.Surface(c.Param("surface")))
	})
	if err != nil {
		return workflowError(err)
	}
	return c.JSON(http.StatusOK, w)
}

type updateRequest struct {
	ConditionType *string  `json:"condition_type,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	RangeEndTooth *int     `json:"range_end_tooth,omitempty"`
}

// UpdateFields handles PUT /capture/:id with partial field updates.
func (h *Handler) UpdateFields(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.manager.Mutate(id, func(w *Workflow) error {
		if req.ConditionType != nil {
			if err := w.SetConditionType(*req.ConditionType); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := w.SetStatus(catalog.TreatmentStatus(*req.Status)); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			if err := w.SetNotes(*req.Notes); err != nil {
				return err
			}
		}
		if req.Cost != nil {
			if err := w.SetCost(*req.Cost); err != nil {
				return err
			}
		}
		if req.RangeEndTooth != nil {
			if err := w.SetRangeEnd(*req.RangeEndTooth); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return workflowError(err)
	}
	return c.JSON(http.StatusOK, w)
}

// Submit handles POST /capture/:id/submit. A validation failure leaves the
// session open and reports the offending field; a persistence rejection
// leaves it open with state preserved for retry. The open-to-submitting
// transition happens under the manager lock so concurrent submits on the
// same session cannot both persist; only the save itself runs unlocked.
func (h *Handler) Submit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var cond *odontogram.ToothCondition
	if _, err := h.manager.Mutate(id, func(w *Workflow) error {
		var err error
		cond, err = w.BeginSubmit()
		return err
	}); err != nil {
		return workflowError(err)
	}

	saveErr := h.saver.SaveCondition(c.Request().Context(), cond)

	if _, err := h.manager.Mutate(id, func(w *Workflow) error {
		return w.FinishSubmit(cond, saveErr, h.notifier)
	}); err != nil {
		return workflowError(err)
	}
	h.manager.Release(id)
	return c.JSON(http.StatusCreated, cond)
}

// CancelSession handles DELETE /capture/:id.
func (h *Handler) CancelSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.manager.Mutate(id, func(w *Workflow) error {
		return w.Cancel()
	}); err != nil {
		return workflowError(err)
	}
	h.manager.Release(id)
	return c.NoContent(http.StatusNoContent)
}

func workflowError(err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	var ve *odontogram.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ve)
	}
	var pe *odontogram.PersistenceError
	if errors.As(err, &pe) {
		return echo.NewHTTPError(http.StatusBadGateway, pe.Error())
	}
	if errors.Is(err, ErrNotOpen) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
