package financial

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/clinica/clinica/internal/platform/db"
)

type paymentRepoPG struct {
	q db.Querier
}

func NewPaymentRepo(q db.Querier) PaymentRepository {
	return &paymentRepoPG{q: q}
}

const paymentCols = `id, patient_id, amount, to_char(payment_date, 'YYYY-MM-DD'),
	method, status, created_at, updated_at`

func (r *paymentRepoPG) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	return r.q.QueryRow(ctx, `
		INSERT INTO payment (id, patient_id, amount, payment_date, method, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		p.ID, p.PatientID, p.Amount, p.Date, p.Method, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *paymentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentCols+` FROM payment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *paymentRepoPG) Update(ctx context.Context, p *Payment) error {
	err := r.q.QueryRow(ctx, `
		UPDATE payment SET
			patient_id=$2, amount=$3, payment_date=$4, method=$5, status=$6, updated_at=NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.PatientID, p.Amount, p.Date, p.Method, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *paymentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *paymentRepoPG) List(ctx context.Context, params map[string]string, limit, offset int) ([]*Payment, int, error) {
	where := " WHERE 1=1"
	var args []any
	idx := 1

	if v := params["patient_id"]; v != "" {
		where += fmt.Sprintf(" AND patient_id = $%d", idx)
		args = append(args, v)
		idx++
	}
	if v := params["status"]; v != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, v)
		idx++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payment`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentCols + ` FROM payment` + where +
		fmt.Sprintf(" ORDER BY payment_date DESC, id LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

func (r *paymentRepoPG) TotalPaidByPatient(ctx context.Context, patientID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(pay.amount) FILTER (WHERE pay.status = 'paid'), 0)
		FROM patient p
		LEFT JOIN payment pay ON pay.patient_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`, patientID).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, ErrPatientNotFound
	}
	return total, err
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.PatientID, &p.Amount, &p.Date, &p.Method, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
