package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/domain/identity"
)

// reportPageSize bounds how many patients are loaded and checked per query.
const reportPageSize = 100

// PatientSource is the slice of the identity service the report reads.
type PatientSource interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
	ListPatients(ctx context.Context, limit, offset int) ([]*identity.Patient, int, error)
	CountAvailableDoctors(ctx context.Context) (int, error)
}

// AppointmentChecker answers appointment existence, singly or per batch.
type AppointmentChecker interface {
	HasAppointment(ctx context.Context, patientID uuid.UUID) (bool, error)
	PatientsWithAppointments(ctx context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// Report is the clinic-wide eligibility snapshot.
type Report struct {
	GeneratedAt      time.Time `json:"generated_at"`
	AvailableDoctors int       `json:"available_doctors"`
	Total            int       `json:"total"`
	EligibleCount    int       `json:"eligible_count"`
	Results          []*Result `json:"results"`
}

// ReasonCounts tallies how many patients failed for each reason.
func (r *Report) ReasonCounts() map[string]int {
	counts := make(map[string]int, len(AllReasons))
	for _, res := range r.Results {
		for _, reason := range res.Reasons {
			counts[reason]++
		}
	}
	return counts
}

type Service struct {
	patients     PatientSource
	appointments AppointmentChecker
	metrics      *Metrics
	now          func() time.Time
}

// NewService builds the report service. metrics may be nil.
func NewService(patients PatientSource, appointments AppointmentChecker, metrics *Metrics) *Service {
	return &Service{
		patients:     patients,
		appointments: appointments,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Report evaluates every patient. The available-doctor count is read once
// up front and shared by all rows.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	doctors, err := s.patients.CountAvailableDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("count available doctors: %w", err)
	}

	rep := &Report{
		GeneratedAt:      s.now().UTC(),
		AvailableDoctors: doctors,
		Results:          []*Result{},
	}

	for offset := 0; ; offset += reportPageSize {
		page, total, err := s.patients.ListPatients(ctx, reportPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list patients: %w", err)
		}
		if len(page) == 0 {
			break
		}

		ids := make([]uuid.UUID, len(page))
		for i, p := range page {
			ids[i] = p.ID
		}
		withAppt, err := s.appointments.PatientsWithAppointments(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("appointment lookup: %w", err)
		}

		for _, p := range page {
			res := Evaluate(p, withAppt[p.ID], doctors)
			s.metrics.observe(res)
			if res.Eligible {
				rep.EligibleCount++
			}
			rep.Results = append(rep.Results, res)
		}

		if offset+len(page) >= total {
			break
		}
	}

	rep.Total = len(rep.Results)
	return rep, nil
}

// EvaluatePatient checks a single patient. The error wraps
// identity.ErrNotFound when the patient does not exist.
func (s *Service) EvaluatePatient(ctx context.Context, id uuid.UUID) (*Result, error) {
	p, err := s.patients.GetPatient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	has, err := s.appointments.HasAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("appointment lookup: %w", err)
	}
	doctors, err := s.patients.CountAvailableDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("count available doctors: %w", err)
	}

	res := Evaluate(p, has, doctors)
	s.metrics.observe(res)
	return res, nil
}
