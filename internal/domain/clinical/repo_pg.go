package clinical

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinica/clinica/internal/platform/db"
)

type treatmentRepoPG struct {
	q db.Querier
}

func NewTreatmentRepo(q db.Querier) TreatmentRepository {
	return &treatmentRepoPG{q: q}
}

const treatmentCols = `id, patient_id, doctor_id, to_char(treatment_date, 'YYYY-MM-DD'),
	description, notes, created_at, updated_at`

func (r *treatmentRepoPG) Create(ctx context.Context, t *TreatmentRecord) error {
	t.ID = uuid.New()
	return r.q.QueryRow(ctx, `
		INSERT INTO treatment_record (id, patient_id, doctor_id, treatment_date, description, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		t.ID, t.PatientID, t.DoctorID, t.Date, t.Description, t.Notes,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *treatmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TreatmentRecord, error) {
	t, err := scanTreatment(r.q.QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatment_record WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *treatmentRepoPG) Update(ctx context.Context, t *TreatmentRecord) error {
	err := r.q.QueryRow(ctx, `
		UPDATE treatment_record SET
			patient_id=$2, doctor_id=$3, treatment_date=$4, description=$5, notes=$6, updated_at=NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		t.ID, t.PatientID, t.DoctorID, t.Date, t.Description, t.Notes,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *treatmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM treatment_record WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *treatmentRepoPG) List(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*TreatmentRecord, int, error) {
	// A nil patientID matches every row.
	const where = ` WHERE ($1::uuid IS NULL OR patient_id = $1)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM treatment_record`+where, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.q.Query(ctx, `SELECT `+treatmentCols+` FROM treatment_record`+where+`
		ORDER BY treatment_date DESC, id LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := []*TreatmentRecord{}
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, t)
	}
	return records, total, rows.Err()
}

func scanTreatment(row pgx.Row) (*TreatmentRecord, error) {
	var t TreatmentRecord
	err := row.Scan(&t.ID, &t.PatientID, &t.DoctorID, &t.Date, &t.Description, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
