package clinical

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	treatments TreatmentRepository
}

func NewService(treatments TreatmentRepository) *Service {
	return &Service{treatments: treatments}
}

func validateTreatment(t *TreatmentRecord) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if t.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return fmt.Errorf("description is required")
	}
	if t.DoctorID != nil && *t.DoctorID == uuid.Nil {
		t.DoctorID = nil
	}
	return nil
}

func (s *Service) CreateTreatment(ctx context.Context, t *TreatmentRecord) error {
	if err := validateTreatment(t); err != nil {
		return err
	}
	return s.treatments.Create(ctx, t)
}

func (s *Service) GetTreatment(ctx context.Context, id uuid.UUID) (*TreatmentRecord, error) {
	return s.treatments.GetByID(ctx, id)
}

func (s *Service) UpdateTreatment(ctx context.Context, t *TreatmentRecord) error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validateTreatment(t); err != nil {
		return err
	}
	return s.treatments.Update(ctx, t)
}

func (s *Service) DeleteTreatment(ctx context.Context, id uuid.UUID) error {
	return s.treatments.Delete(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*TreatmentRecord, int, error) {
	return s.treatments.List(ctx, patientID, limit, offset)
}
