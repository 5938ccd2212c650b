package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error)

	// HasAny ignores date and time: a past appointment still counts.
	HasAny(ctx context.Context, patientID uuid.UUID) (bool, error)
	// PatientsWith returns the subset of ids that have at least one appointment.
	PatientsWith(ctx context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
