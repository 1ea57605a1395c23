package consultation

import (
	"context"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const consCols = `id, appointment_id, patient_id, doctor_id, status, room_name,
	started_at, ended_at, duration_seconds, notes, created_at, updated_at`

func (r *repoPG) scanConsultation(row pgx.Row) (*Consultation, error) {
	var cons Consultation
	err := row.Scan(&cons.ID, &cons.AppointmentID, &cons.PatientID, &cons.DoctorID, &cons.Status,
		&cons.RoomName, &cons.StartedAt, &cons.EndedAt, &cons.DurationSeconds, &cons.Notes,
		&cons.CreatedAt, &cons.UpdatedAt)
	return &cons, err
}

func (r *repoPG) Create(ctx context.Context, cons *Consultation) error {
	cons.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultation (id, appointment_id, patient_id, doctor_id, status, room_name, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		cons.ID, cons.AppointmentID, cons.PatientID, cons.DoctorID, cons.Status, cons.RoomName, cons.Notes).
		Scan(&cons.CreatedAt, &cons.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return r.scanConsultation(r.conn(ctx).QueryRow(ctx, `SELECT `+consCols+` FROM consultation WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, cons *Consultation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE consultation SET status=$2, room_name=$3, started_at=$4, ended_at=$5,
			duration_seconds=$6, notes=$7, updated_at=NOW()
		WHERE id = $1`,
		cons.ID, cons.Status, cons.RoomName, cons.StartedAt, cons.EndedAt, cons.DurationSeconds, cons.Notes)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM consultation`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+consCols+` FROM consultation ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+consCols+` FROM consultation WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation WHERE doctor_id = $1`, doctorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+consCols+` FROM consultation WHERE doctor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) collect(rows pgx.Rows, total int) ([]*Consultation, int, error) {
	var items []*Consultation
	for rows.Next() {
		cons, err := r.scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cons)
	}
	return items, total, rows.Err()
}
