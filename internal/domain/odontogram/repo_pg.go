package odontogram

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odonto/odonto/internal/domain/catalog"
	"github.com/odonto/odonto/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type odontogramRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &odontogramRepoPG{pool: pool}
}

func (r *odontogramRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *odontogramRepoPG) CreateOdontogram(ctx context.Context, o *Odontogram) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO odontogram (id, name, patient_id)
		VALUES ($1, $2, $3)
		RETURNING created_date`,
		o.ID, o.Name, o.PatientID).Scan(&o.CreatedDate)
}

func (r *odontogramRepoPG) GetOdontogram(ctx context.Context, id uuid.UUID) (*Odontogram, error) {
	var o Odontogram
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, patient_id, created_date FROM odontogram WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.PatientID, &o.CreatedDate)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *odontogramRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Odontogram, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM odontogram WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, patient_id, created_date FROM odontogram
		WHERE patient_id = $1 ORDER BY created_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Odontogram
	for rows.Next() {
		var o Odontogram
		if err := rows.Scan(&o.ID, &o.Name, &o.PatientID, &o.CreatedDate); err != nil {
			return nil, 0, err
		}
		items = append(items, &o)
	}
	return items, total, rows.Err()
}

// tcCols deliberately excludes seq; seq only fixes insertion order.
const tcCols = `id, odontogram_id, tooth_number, range_end_tooth, surfaces,
	condition_type, status, notes, cost, created_date`

func scanCondition(row pgx.Row) (*ToothCondition, error) {
	var c ToothCondition
	var surfaces []string
	err := row.Scan(&c.ID, &c.OdontogramID, &c.ToothNumber, &c.RangeEndTooth, &surfaces,
		&c.ConditionType, &c.Status, &c.Notes, &c.Cost, &c.CreatedDate)
	if err != nil {
		return nil, err
	}
	c.Surfaces = make([]catalog.Surface, len(surfaces))
	for i, s := range surfaces {
		c.Surfaces[i] = catalog.Surface(s)
	}
	return &c, nil
}

func surfaceStrings(surfaces []catalog.Surface) []string {
	out := make([]string, len(surfaces))
	for i, s := range surfaces {
		out[i] = string(s)
	}
	return out
}

func (r *odontogramRepoPG) AddCondition(ctx context.Context, c *ToothCondition) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO tooth_condition (id, odontogram_id, tooth_number, range_end_tooth,
			surfaces, condition_type, status, notes, cost, created_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		c.ID, c.OdontogramID, c.ToothNumber, c.RangeEndTooth,
		surfaceStrings(c.Surfaces), c.ConditionType, c.Status, c.Notes, c.Cost, c.CreatedDate)
	return err
}

func (r *odontogramRepoPG) ConditionsByOdontogram(ctx context.Context, odontogramID uuid.UUID) ([]*ToothCondition, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+tcCols+` FROM tooth_condition WHERE odontogram_id = $1 ORDER BY seq ASC`,
		odontogramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ToothCondition
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *odontogramRepoPG) ConditionsByTooth(ctx context.Context, odontogramID uuid.UUID, tooth int) ([]*ToothCondition, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+tcCols+` FROM tooth_condition
		 WHERE odontogram_id = $1 AND tooth_number = $2 ORDER BY seq ASC`,
		odontogramID, tooth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ToothCondition
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
