package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Age             int       `db:"age" json:"age"`
	Phone           string    `db:"phone" json:"phone"`
	RG              *string   `db:"rg" json:"rg,omitempty"`
	CPF             *string   `db:"cpf" json:"cpf,omitempty"`
	PaymentsCurrent bool      `db:"payments_current" json:"payments_current"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Normalize collapses empty and whitespace-only documents to nil, so that
// "absent" has a single representation everywhere downstream.
func (p *Patient) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.RG = normalizeDocument(p.RG)
	p.CPF = normalizeDocument(p.CPF)
}

// HasDocuments reports whether both RG and CPF are present.
func (p *Patient) HasDocuments() bool {
	return normalizeDocument(p.RG) != nil && normalizeDocument(p.CPF) != nil
}

func normalizeDocument(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Specialty string    `db:"specialty" json:"specialty"`
	License   string    `db:"license" json:"license"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Available bool      `db:"available" json:"available"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
