package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/db"
)

// MeasureDefinition is a named read-only aggregate over the clinic tables.
// Parameters are bound positionally ($1, $2, ...) in the order listed; an
// absent parameter is bound as NULL and the SQL treats NULL as "no filter".
// Every parameter is a date in YYYY-MM-DD form.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"-"`
	Parameters  []string `json:"parameters"`
}

type MeasureReport struct {
	MeasureID   string            `json:"measure_id"`
	MeasureName string            `json:"measure_name"`
	GeneratedAt time.Time         `json:"generated_at"`
	Results     []map[string]any  `json:"results"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Total patients and how many have payments current",
		SQL: `SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN payments_current THEN 1 ELSE 0 END), 0) AS payments_current
			FROM patient`,
		Parameters: []string{},
	},
	{
		ID:          "doctor-availability",
		Name:        "Doctor Availability",
		Description: "Doctors split by availability",
		SQL: `SELECT COUNT(*) FILTER (WHERE available) AS available,
			COUNT(*) FILTER (WHERE NOT available) AS unavailable
			FROM doctor`,
		Parameters: []string{},
	},
	{
		ID:          "appointments-by-doctor",
		Name:        "Appointments by Doctor",
		Description: "Appointment volume per doctor, optionally within a date range",
		SQL: `SELECT d.id::text AS doctor_id, d.name AS doctor_name, COUNT(a.id) AS total
			FROM doctor d
			LEFT JOIN appointment a ON a.doctor_id = d.id
				AND ($1::date IS NULL OR a.appointment_date >= $1::date)
				AND ($2::date IS NULL OR a.appointment_date <= $2::date)
			GROUP BY d.id, d.name
			ORDER BY total DESC, d.name`,
		Parameters: []string{"from", "to"},
	},
	{
		ID:          "appointments-by-type",
		Name:        "Appointments by Type",
		Description: "Appointment volume grouped by appointment type",
		SQL: `SELECT appointment_type, COUNT(*) AS total
			FROM appointment
			GROUP BY appointment_type
			ORDER BY total DESC`,
		Parameters: []string{},
	},
	{
		ID:          "payments-by-status",
		Name:        "Payments by Status",
		Description: "Payment count and amount grouped by status",
		SQL: `SELECT status, COUNT(*) AS total, COALESCE(SUM(amount), 0)::text AS amount
			FROM payment
			GROUP BY status
			ORDER BY status`,
		Parameters: []string{},
	},
	{
		ID:          "treatments-by-month",
		Name:        "Treatments by Month",
		Description: "Treatment records per calendar month",
		SQL: `SELECT to_char(date_trunc('month', treatment_date), 'YYYY-MM') AS month, COUNT(*) AS total
			FROM treatment_record
			GROUP BY 1
			ORDER BY 1`,
		Parameters: []string{},
	},
}

const dateLayout = "2006-01-02"

// columnValue renders uuid columns as strings; pgx decodes them to [16]byte.
func columnValue(v any) any {
	if b, ok := v.([16]byte); ok {
		return uuid.UUID(b).String()
	}
	return v
}

// FindMeasure returns the measure with the given id, or nil.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}

type Handler struct {
	q db.Querier
}

func NewHandler(q db.Querier) *Handler {
	return &Handler{q: q}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports")
	g.GET("/measures", h.ListMeasures)
	g.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	args := make([]any, len(measure.Parameters))
	for i, p := range measure.Parameters {
		v := c.QueryParam(p)
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be YYYY-MM-DD", p))
		}
		params[p] = v
		args[i] = v
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL, args...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "measure evaluation failed").SetInternal(err)
	}

	return c.JSON(http.StatusOK, MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		Parameters:  params,
	})
}

func (h *Handler) executeSQL(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := h.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	results := []map[string]any{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]any, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[fd.Name] = columnValue(values[i])
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
