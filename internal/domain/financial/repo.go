package financial

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("payment not found")
	ErrPatientNotFound = errors.New("patient not found")
)

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params map[string]string, limit, offset int) ([]*Payment, int, error)
	// TotalPaidByPatient returns ErrPatientNotFound for an unknown patient.
	TotalPaidByPatient(ctx context.Context, patientID uuid.UUID) (decimal.Decimal, error)
}
