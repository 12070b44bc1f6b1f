package odontogram

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/odonto/odonto/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/odontograms", h.CreateOdontogram)
	api.GET("/odontograms/:id", h.GetOdontogram)
	api.GET("/patients/:patientID/odontograms", h.ListByPatient)

	api.POST("/odontograms/:id/conditions", h.AddCondition)
	api.GET("/odontograms/:id/conditions", h.ListConditions)
	api.GET("/odontograms/:id/teeth/:tooth/conditions", h.ListToothConditions)
}

func (h *Handler) CreateOdontogram(c echo.Context) error {
	var o Odontogram
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateOdontogram(c.Request().Context(), &o); err != nil {
		return validationAware(err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOdontogram(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := h.svc.GetOdontogram(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "odontogram not found")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) AddCondition(c echo.Context) error {
	odontogramID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cond ToothCondition
	if err := c.Bind(&cond); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cond.OdontogramID = odontogramID
	if err := h.svc.AddCondition(c.Request().Context(), &cond); err != nil {
		return validationAware(err)
	}
	return c.JSON(http.StatusCreated, cond)
}

func (h *Handler) ListConditions(c echo.Context) error {
	odontogramID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	store, err := h.svc.ConditionStore(c.Request().Context(), odontogramID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, store.AllConditions())
}

func (h *Handler) ListToothConditions(c echo.Context) error {
	odontogramID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	tooth, err := strconv.Atoi(c.Param("tooth"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tooth number")
	}
	conds, err := h.svc.ConditionsForTooth(c.Request().Context(), odontogramID, tooth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusOK, []*ToothCondition{})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if conds == nil {
		conds = []*ToothCondition{}
	}
	return c.JSON(http.StatusOK, conds)
}

// validationAware maps a ValidationError to 422 with the field payload and
// everything else to 500.
func validationAware(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ve)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
