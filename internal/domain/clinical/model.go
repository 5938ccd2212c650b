package clinical

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// TreatmentRecord maps to the treatment_record table.
type TreatmentRecord struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID    *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	Date        string     `db:"treatment_date" json:"date"`
	Description string     `db:"description" json:"description"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
