package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "odontogram-count",
		Name:        "Odontogram Count",
		Description: "Total number of odontograms and distinct patients with at least one chart",
		SQL:         `SELECT COUNT(*) AS total, COUNT(DISTINCT patient_id) AS patients FROM odontogram`,
		Parameters:  []string{},
	},
	{
		ID:          "conditions-by-type",
		Name:        "Conditions by Type",
		Description: "Number of recorded tooth conditions grouped by condition type",
		SQL:         `SELECT condition_type, COUNT(*) AS total FROM tooth_condition GROUP BY condition_type ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "conditions-by-status",
		Name:        "Conditions by Treatment Status",
		Description: "Count of tooth conditions by treatment status",
		SQL:         `SELECT status, COUNT(*) AS total FROM tooth_condition GROUP BY status ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "cost-by-status",
		Name:        "Treatment Cost by Status",
		Description: "Sum of estimated treatment cost grouped by treatment status",
		SQL:         `SELECT status, COALESCE(SUM(cost), 0) AS total_cost FROM tooth_condition GROUP BY status ORDER BY total_cost DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "most-affected-teeth",
		Name:        "Most Affected Teeth",
		Description: "Teeth with the highest number of recorded conditions",
		SQL:         `SELECT tooth_number, COUNT(*) AS total FROM tooth_condition GROUP BY tooth_number ORDER BY total DESC LIMIT 10`,
		Parameters:  []string{},
	},
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	pool *pgxpool.Pool
}

// NewHandler creates a new reporting handler.
func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the reporting API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	reportGroup := api.Group("/reports")
	reportGroup.GET("/measures", h.ListMeasures)
	reportGroup.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure's SQL and returns the results.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	report := MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
		Parameters:  params,
	}

	return c.JSON(http.StatusOK, report)
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (h *Handler) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	return results, nil
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}
