package financial

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	payments PaymentRepository
}

func NewService(payments PaymentRepository) *Service {
	return &Service{payments: payments}
}

func validatePayment(p *Payment) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if p.Amount.IsZero() {
		return fmt.Errorf("amount is required")
	}
	if !p.Amount.Equal(p.Amount.Round(2)) {
		return fmt.Errorf("amount must have at most two decimal places")
	}
	if p.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	switch p.Status {
	case "":
		p.Status = StatusPaid
	case StatusPaid, StatusPending:
	default:
		return fmt.Errorf("status must be %q or %q", StatusPaid, StatusPending)
	}
	return nil
}

func (s *Service) CreatePayment(ctx context.Context, p *Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	return s.payments.Create(ctx, p)
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) UpdatePayment(ctx context.Context, p *Payment) error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validatePayment(p); err != nil {
		return err
	}
	return s.payments.Update(ctx, p)
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.payments.Delete(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, params map[string]string, limit, offset int) ([]*Payment, int, error) {
	if v := params["patient_id"]; v != "" {
		if _, err := uuid.Parse(v); err != nil {
			return nil, 0, fmt.Errorf("invalid patient_id")
		}
	}
	if v := params["status"]; v != "" && v != StatusPaid && v != StatusPending {
		return nil, 0, fmt.Errorf("status must be %q or %q", StatusPaid, StatusPending)
	}
	return s.payments.List(ctx, params, limit, offset)
}

// TotalByPatient sums paid amounts only; pending payments are excluded.
func (s *Service) TotalByPatient(ctx context.Context, patientID uuid.UUID) (*PatientTotal, error) {
	total, err := s.payments.TotalPaidByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("total by patient: %w", err)
	}
	return &PatientTotal{PatientID: patientID, TotalPaid: total}, nil
}
