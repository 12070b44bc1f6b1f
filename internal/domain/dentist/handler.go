package dentist

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odonto/odonto/internal/domain/odontogram"
	"github.com/odonto/odonto/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dentists", h.ListDentists)
	api.GET("/dentists/:id", h.GetDentist)
	api.PUT("/dentists/:id", h.SaveProfile)
	api.POST("/dentists", h.CreateProfile)
	api.GET("/patients/:patientID/dentist", h.ApplicableDentist)
}

func (h *Handler) CreateProfile(c echo.Context) error {
	var d Dentist
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveProfile(c.Request().Context(), &d); err != nil {
		return saveError(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) SaveProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var d Dentist
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.SaveProfile(c.Request().Context(), &d); err != nil {
		return saveError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetDentist(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.GetDentist(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "dentist not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDentists(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDentists(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// ApplicableDentist handles GET /patients/:patientID/dentist.
func (h *Handler) ApplicableDentist(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	dentistID, found, err := h.svc.ApplicableDentist(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "no upcoming appointment with an assigned dentist")
	}
	return c.JSON(http.StatusOK, map[string]string{"dentist_id": dentistID.String()})
}

func saveError(err error) error {
	var ve *odontogram.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ve)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
