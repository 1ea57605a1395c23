package doctor

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

// =========== Doctor Repository ===========

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

const doctorCols = `id, active, first_name, last_name, email, phone, specialization, license_number,
	bio, years_of_experience, consultation_fee, verified, verified_at, created_at, updated_at`

func (r *repoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Active, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&d.Specialization, &d.LicenseNumber, &d.Bio, &d.YearsOfExperience, &d.ConsultationFee,
		&d.Verified, &d.VerifiedAt, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (id, active, first_name, last_name, email, phone, specialization,
			license_number, bio, years_of_experience, consultation_fee, verified)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		d.ID, d.Active, d.FirstName, d.LastName, d.Email, d.Phone, d.Specialization,
		d.LicenseNumber, d.Bio, d.YearsOfExperience, d.ConsultationFee, d.Verified).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE email = $1`, email))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET active=$2, first_name=$3, last_name=$4, email=$5, phone=$6,
			specialization=$7, license_number=$8, bio=$9, years_of_experience=$10,
			consultation_fee=$11, verified=$12, verified_at=$13, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Active, d.FirstName, d.LastName, d.Email, d.Phone,
		d.Specialization, d.LicenseNumber, d.Bio, d.YearsOfExperience,
		d.ConsultationFee, d.Verified, d.VerifiedAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctor ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) ListBySpecialization(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM doctor WHERE specialization = $1`, specialization).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE specialization = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		specialization, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) collect(rows pgx.Rows, total int) ([]*Doctor, int, error) {
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// =========== Availability Repository ===========

type availabilityRepoPG struct{ pool *pgxpool.Pool }

func NewAvailabilityRepoPG(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepoPG{pool: pool}
}

func (r *availabilityRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *availabilityRepoPG) Create(ctx context.Context, a *DoctorAvailability) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor_availability (id, doctor_id, day_of_week, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		a.ID, a.DoctorID, a.DayOfWeek, a.StartTime, a.EndTime).
		Scan(&a.CreatedAt)
}

func (r *availabilityRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor_availability WHERE id = $1`, id)
	return err
}

func (r *availabilityRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*DoctorAvailability, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, doctor_id, day_of_week, start_time, end_time, created_at
		FROM doctor_availability WHERE doctor_id = $1
		ORDER BY day_of_week, start_time`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DoctorAvailability
	for rows.Next() {
		var a DoctorAvailability
		if err := rows.Scan(&a.ID, &a.DoctorID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
