package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panacare/panacare-api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Plan Repository ===========

type planRepoPG struct{ pool *pgxpool.Pool }

func NewPlanRepoPG(pool *pgxpool.Pool) PlanRepository { return &planRepoPG{pool: pool} }

func (r *planRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const planCols = `id, name, description, amount_cents, currency, duration_days, active, created_at, updated_at`

func (r *planRepoPG) scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.AmountCents, &p.Currency,
		&p.DurationDays, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *planRepoPG) Create(ctx context.Context, p *Plan) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO plan (id, name, description, amount_cents, currency, duration_days, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.AmountCents, p.Currency, p.DurationDays, p.Active).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *planRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return r.scanPlan(r.conn(ctx).QueryRow(ctx, `SELECT `+planCols+` FROM plan WHERE id = $1`, id))
}

func (r *planRepoPG) Update(ctx context.Context, p *Plan) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE plan SET name=$2, description=$3, amount_cents=$4, currency=$5,
			duration_days=$6, active=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.AmountCents, p.Currency, p.DurationDays, p.Active)
	return err
}

func (r *planRepoPG) List(ctx context.Context, limit, offset int) ([]*Plan, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM plan`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+planCols+` FROM plan ORDER BY amount_cents LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Plan
	for rows.Next() {
		p, err := r.scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// =========== Subscription Repository ===========

type subscriptionRepoPG struct{ pool *pgxpool.Pool }

func NewSubscriptionRepoPG(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepoPG{pool: pool}
}

func (r *subscriptionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const subCols = `id, patient_id, plan_id, status, start_date, end_date, auto_renew, created_at, updated_at`

func (r *subscriptionRepoPG) scanSubscription(row pgx.Row) (*Subscription, error) {
	var s Subscription
	err := row.Scan(&s.ID, &s.PatientID, &s.PlanID, &s.Status, &s.StartDate, &s.EndDate,
		&s.AutoRenew, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *subscriptionRepoPG) Create(ctx context.Context, s *Subscription) error {
	s.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO subscription (id, patient_id, plan_id, status, start_date, end_date, auto_renew)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		s.ID, s.PatientID, s.PlanID, s.Status, s.StartDate, s.EndDate, s.AutoRenew).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *subscriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	return r.scanSubscription(r.conn(ctx).QueryRow(ctx, `SELECT `+subCols+` FROM subscription WHERE id = $1`, id))
}

func (r *subscriptionRepoPG) Update(ctx context.Context, s *Subscription) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE subscription SET status=$2, start_date=$3, end_date=$4, auto_renew=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Status, s.StartDate, s.EndDate, s.AutoRenew)
	return err
}

// ExpireDue flips every active subscription whose window ended before the
// given instant. Returns the number of rows expired.
func (r *subscriptionRepoPG) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE subscription SET status=$1, updated_at=NOW()
		WHERE status = $2 AND end_date < $3`,
		SubscriptionExpired, SubscriptionActive, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *subscriptionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Subscription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM subscription WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+subCols+` FROM subscription WHERE patient_id = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Subscription
	for rows.Next() {
		s, err := r.scanSubscription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
