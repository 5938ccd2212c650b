package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

func validateAppointment(a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	a.Type = strings.TrimSpace(a.Type)
	if a.Type == "" {
		return fmt.Errorf("type is required")
	}
	if a.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	a.Time = strings.TrimSpace(a.Time)
	if a.Time == "" {
		return fmt.Errorf("time is required")
	}
	return nil
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if err := validateAppointment(a); err != nil {
		return err
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validateAppointment(a); err != nil {
		return err
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

// ListAppointments accepts patient_id, doctor_id and date filters.
func (s *Service) ListAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	for _, key := range []string{"patient_id", "doctor_id"} {
		if v := params[key]; v != "" {
			if _, err := uuid.Parse(v); err != nil {
				return nil, 0, fmt.Errorf("invalid %s", key)
			}
		}
	}
	if v := params["date"]; v != "" {
		if _, err := time.Parse(DateLayout, v); err != nil {
			return nil, 0, fmt.Errorf("date must be YYYY-MM-DD")
		}
	}
	return s.appointments.List(ctx, params, limit, offset)
}

// HasAppointment reports whether the patient has any appointment at all.
func (s *Service) HasAppointment(ctx context.Context, patientID uuid.UUID) (bool, error) {
	return s.appointments.HasAny(ctx, patientID)
}

// PatientsWithAppointments resolves appointment existence for a batch of
// patients in a single query.
func (s *Service) PatientsWithAppointments(ctx context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return s.appointments.PatientsWith(ctx, patientIDs)
}
