package dentist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odonto/odonto/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type dentistRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &dentistRepoPG{pool: pool}
}

func (r *dentistRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const dentistCols = `id, full_name, email, phone, specialty, active, created_at, updated_at`

func scanDentist(row pgx.Row) (*Dentist, error) {
	var d Dentist
	err := row.Scan(&d.ID, &d.FullName, &d.Email, &d.Phone, &d.Specialty, &d.Active,
		&d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

// Save upserts the profile so the settings form can call it repeatedly.
func (r *dentistRepoPG) Save(ctx context.Context, d *Dentist) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO dentist (id, full_name, email, phone, specialty, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			full_name=EXCLUDED.full_name, email=EXCLUDED.email, phone=EXCLUDED.phone,
			specialty=EXCLUDED.specialty, active=EXCLUDED.active, updated_at=NOW()`,
		d.ID, d.FullName, d.Email, d.Phone, d.Specialty, d.Active)
	return err
}

func (r *dentistRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	return scanDentist(r.conn(ctx).QueryRow(ctx,
		`SELECT `+dentistCols+` FROM dentist WHERE id = $1`, id))
}

func (r *dentistRepoPG) List(ctx context.Context, limit, offset int) ([]*Dentist, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM dentist`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+dentistCols+` FROM dentist ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Dentist
	for rows.Next() {
		d, err := scanDentist(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *dentistRepoPG) FindApplicableForPatient(ctx context.Context, patientID uuid.UUID, from time.Time) (uuid.UUID, bool, error) {
	var dentistID uuid.UUID
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT dentist_id FROM appointment
		WHERE patient_id = $1
		  AND date >= $2
		  AND status = 'active'
		  AND status_appointment <> 'cancelled'
		  AND dentist_id IS NOT NULL
		ORDER BY date ASC, time ASC
		LIMIT 1`,
		patientID, from).Scan(&dentistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return dentistID, true, nil
}
