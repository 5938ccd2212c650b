// Package eligibility decides whether a patient can be granted access to
// care, and aggregates that decision into clinic-wide reports.
package eligibility

import (
	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/domain/identity"
)

// Reasons are reported in this order, at most once each.
const (
	ReasonNoAppointment       = "no appointment scheduled"
	ReasonIncompleteDocuments = "incomplete documents"
	ReasonPendingPayments     = "pending payments"
	ReasonNoDoctorAvailable   = "no doctor available"
)

// AllReasons lists every reason in evaluation order.
var AllReasons = []string{
	ReasonNoAppointment,
	ReasonIncompleteDocuments,
	ReasonPendingPayments,
	ReasonNoDoctorAvailable,
}

// Result is the transient outcome for one patient. Eligible is true exactly
// when Reasons is empty.
type Result struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Eligible    bool      `json:"eligible"`
	Reasons     []string  `json:"reasons"`
}

// Evaluate runs every check against p without short-circuiting. Missing and
// blank RG or CPF are treated the same.
func Evaluate(p *identity.Patient, hasAnyAppointment bool, availableDoctorCount int) *Result {
	reasons := make([]string, 0, len(AllReasons))

	if !hasAnyAppointment {
		reasons = append(reasons, ReasonNoAppointment)
	}
	if !p.HasDocuments() {
		reasons = append(reasons, ReasonIncompleteDocuments)
	}
	if !p.PaymentsCurrent {
		reasons = append(reasons, ReasonPendingPayments)
	}
	if availableDoctorCount == 0 {
		reasons = append(reasons, ReasonNoDoctorAvailable)
	}

	return &Result{
		PatientID:   p.ID,
		PatientName: p.Name,
		Eligible:    len(reasons) == 0,
		Reasons:     reasons,
	}
}
