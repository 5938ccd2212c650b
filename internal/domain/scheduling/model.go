package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format for appointment dates.
const DateLayout = "2006-01-02"

// Appointment maps to the appointment table. Date and Time are kept as
// entered; only Date is parsed.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Type        string    `db:"appointment_type" json:"type"`
	Date        string    `db:"appointment_date" json:"date"`
	Time        string    `db:"appointment_time" json:"time"`
	PatientName string    `db:"-" json:"patient_name,omitempty"`
	DoctorName  string    `db:"-" json:"doctor_name,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
