package report

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odonto/odonto/internal/domain/odontogram"
)

type Handler struct {
	gen    *Generator
	svc    *odontogram.Service
	clinic string
}

// NewHandler creates a report handler. clinicName is the configured clinic
// header used when a request does not supply its own.
func NewHandler(gen *Generator, svc *odontogram.Service, clinicName string) *Handler {
	return &Handler{gen: gen, svc: svc, clinic: clinicName}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/odontograms/:id/report", h.GenerateReport)
}

type generateRequest struct {
	ClinicName   string `json:"clinic_name,omitempty"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email,omitempty"`
	PatientPhone string `json:"patient_phone,omitempty"`
	SnapshotID   string `json:"snapshot_id,omitempty"`
}

// GenerateReport handles POST /odontograms/:id/report and streams back the
// PDF. Snapshot failures are non-fatal; the document is produced either way.
func (h *Handler) GenerateReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	o, err := h.svc.GetOdontogram(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "odontogram not found")
	}
	store, err := h.svc.ConditionStore(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	clinic := req.ClinicName
	if clinic == "" {
		clinic = h.clinic
	}

	doc, err := h.gen.Generate(ctx, Input{
		ClinicName:          clinic,
		PatientName:         req.PatientName,
		PatientEmail:        req.PatientEmail,
		PatientPhone:        req.PatientPhone,
		Odontogram:          o,
		Conditions:          store.AllConditions(),
		ChartSnapshotHandle: req.SnapshotID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", doc.PDF)
}
