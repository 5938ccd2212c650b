package eligibility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinica/clinica/internal/domain/identity"
)

func strPtr(s string) *string { return &s }

func completePatient() *identity.Patient {
	return &identity.Patient{
		ID:              uuid.New(),
		Name:            "Maria",
		RG:              strPtr("12.345.678-9"),
		CPF:             strPtr("123.456.789-00"),
		PaymentsCurrent: true,
	}
}

func TestEvaluate_AllConditionsMet(t *testing.T) {
	p := completePatient()
	res := Evaluate(p, true, 1)

	assert.True(t, res.Eligible)
	require.NotNil(t, res.Reasons)
	assert.Empty(t, res.Reasons)
	assert.Equal(t, p.ID, res.PatientID)
	assert.Equal(t, "Maria", res.PatientName)
}

func TestEvaluate_AllFailuresInOrder(t *testing.T) {
	p := &identity.Patient{ID: uuid.New(), Name: "Joao"}
	res := Evaluate(p, false, 0)

	assert.False(t, res.Eligible)
	assert.Equal(t, []string{
		ReasonNoAppointment,
		ReasonIncompleteDocuments,
		ReasonPendingPayments,
		ReasonNoDoctorAvailable,
	}, res.Reasons)
}

func TestEvaluate_EmptyRGOnly(t *testing.T) {
	p := &identity.Patient{RG: strPtr(""), CPF: strPtr("123"), PaymentsCurrent: true}
	res := Evaluate(p, true, 2)

	assert.False(t, res.Eligible)
	assert.Equal(t, []string{ReasonIncompleteDocuments}, res.Reasons)
}

func TestEvaluate_BothDocumentsMissingIsOneReason(t *testing.T) {
	p := &identity.Patient{PaymentsCurrent: true}
	res := Evaluate(p, true, 1)

	assert.Equal(t, []string{ReasonIncompleteDocuments}, res.Reasons)
}

func TestEvaluate_AbsentAndBlankDocumentsEquivalent(t *testing.T) {
	absent := &identity.Patient{CPF: strPtr("1"), PaymentsCurrent: true}
	blank := &identity.Patient{RG: strPtr("   "), CPF: strPtr("1"), PaymentsCurrent: true}

	assert.Equal(t, Evaluate(absent, true, 1).Reasons, Evaluate(blank, true, 1).Reasons)
}

func TestEvaluate_DoctorCountOnlyAffectsDoctorReason(t *testing.T) {
	p := &identity.Patient{RG: strPtr("1")}

	without := Evaluate(p, false, 0)
	with := Evaluate(p, false, 1)

	require.Len(t, without.Reasons, len(with.Reasons)+1)
	assert.Equal(t, ReasonNoDoctorAvailable, without.Reasons[len(without.Reasons)-1])
	assert.Equal(t, with.Reasons, without.Reasons[:len(without.Reasons)-1])
}

func TestEvaluate_Invariants(t *testing.T) {
	docs := []*string{nil, strPtr(""), strPtr("x")}
	for _, hasAppt := range []bool{false, true} {
		for _, rg := range docs {
			for _, cpf := range docs {
				for _, current := range []bool{false, true} {
					for _, doctors := range []int{0, 1, 5} {
						p := &identity.Patient{RG: rg, CPF: cpf, PaymentsCurrent: current}
						res := Evaluate(p, hasAppt, doctors)

						assert.Equal(t, len(res.Reasons) == 0, res.Eligible)

						seen := map[string]bool{}
						for _, r := range res.Reasons {
							assert.False(t, seen[r], "duplicate reason %q", r)
							seen[r] = true
						}
					}
				}
			}
		}
	}
}

func TestEvaluate_DoesNotMutatePatient(t *testing.T) {
	p := &identity.Patient{RG: strPtr("  "), CPF: strPtr("1")}
	Evaluate(p, true, 1)

	require.NotNil(t, p.RG)
	assert.Equal(t, "  ", *p.RG)
}
