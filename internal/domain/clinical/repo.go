package clinical

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("treatment record not found")

type TreatmentRepository interface {
	Create(ctx context.Context, t *TreatmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*TreatmentRecord, error)
	Update(ctx context.Context, t *TreatmentRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*TreatmentRecord, int, error)
}
