package financial

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Payment maps to the payment table. Amount is exact to the cent and
// serializes as a decimal string.
type Payment struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	PatientID uuid.UUID       `db:"patient_id" json:"patient_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Date      string          `db:"payment_date" json:"date"`
	Method    *string         `db:"method" json:"method,omitempty"`
	Status    string          `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// PatientTotal is the sum of paid amounts for one patient.
type PatientTotal struct {
	PatientID uuid.UUID       `json:"patient_id"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}
