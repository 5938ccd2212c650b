package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinica/clinica/internal/platform/db"
)

type appointmentRepoPG struct {
	q db.Querier
}

func NewAppointmentRepo(q db.Querier) AppointmentRepository {
	return &appointmentRepoPG{q: q}
}

const apptCols = `a.id, a.patient_id, a.doctor_id, a.appointment_type,
	to_char(a.appointment_date, 'YYYY-MM-DD'), a.appointment_time,
	p.name, d.name, a.created_at, a.updated_at`

const apptFrom = ` FROM appointment a
	JOIN patient p ON p.id = a.patient_id
	JOIN doctor d ON d.id = a.doctor_id`

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	return r.q.QueryRow(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, appointment_type, appointment_date, appointment_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DoctorID, a.Type, a.Date, a.Time,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(ctx, `SELECT `+apptCols+apptFrom+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	err := r.q.QueryRow(ctx, `
		UPDATE appointment SET
			patient_id=$2, doctor_id=$3, appointment_type=$4, appointment_date=$5, appointment_time=$6,
			updated_at=NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DoctorID, a.Type, a.Date, a.Time,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *appointmentRepoPG) List(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	where := " WHERE 1=1"
	var args []any
	idx := 1

	if v := params["patient_id"]; v != "" {
		where += fmt.Sprintf(" AND a.patient_id = $%d", idx)
		args = append(args, v)
		idx++
	}
	if v := params["doctor_id"]; v != "" {
		where += fmt.Sprintf(" AND a.doctor_id = $%d", idx)
		args = append(args, v)
		idx++
	}
	if v := params["date"]; v != "" {
		where += fmt.Sprintf(" AND a.appointment_date = $%d", idx)
		args = append(args, v)
		idx++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM appointment a`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + apptCols + apptFrom + where +
		fmt.Sprintf(" ORDER BY a.appointment_date, a.appointment_time, a.id LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	appts := []*Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		appts = append(appts, a)
	}
	return appts, total, rows.Err()
}

func (r *appointmentRepoPG) HasAny(ctx context.Context, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM appointment WHERE patient_id = $1)`, patientID).Scan(&exists)
	return exists, err
}

func (r *appointmentRepoPG) PatientsWith(ctx context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(patientIDs))
	if len(patientIDs) == 0 {
		return result, nil
	}

	rows, err := r.q.Query(ctx, `SELECT DISTINCT patient_id FROM appointment WHERE patient_id = ANY($1)`, patientIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	return result, rows.Err()
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Type, &a.Date, &a.Time,
		&a.PatientName, &a.DoctorName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
