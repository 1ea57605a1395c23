package article

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

const articleCols = `id, author_id, title, slug, body, tags, published, published_at, created_at, updated_at`

func (r *repoPG) scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Slug, &a.Body, &a.Tags,
		&a.Published, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Article) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO article (id, author_id, title, slug, body, tags, published)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		a.ID, a.AuthorID, a.Title, a.Slug, a.Body, a.Tags, a.Published).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	return r.scanArticle(r.conn(ctx).QueryRow(ctx, `SELECT `+articleCols+` FROM article WHERE id = $1`, id))
}

func (r *repoPG) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	return r.scanArticle(r.conn(ctx).QueryRow(ctx, `SELECT `+articleCols+` FROM article WHERE slug = $1`, slug))
}

func (r *repoPG) Update(ctx context.Context, a *Article) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE article SET title=$2, slug=$3, body=$4, tags=$5, published=$6, published_at=$7, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Title, a.Slug, a.Body, a.Tags, a.Published, a.PublishedAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM article WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*Article, int, error) {
	where := ``
	if publishedOnly {
		where = ` WHERE published`
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM article`+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+articleCols+` FROM article`+where+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Article
	for rows.Next() {
		a, err := r.scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
