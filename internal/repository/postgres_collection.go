package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/backoffice-api/internal/domain"
)

type postgresCollection[T any] struct {
	name  string
	table string
	pool  *pgxpool.Pool
}

// NewPostgresCollection returns a collection backed by a JSONB table named after the collection.
func NewPostgresCollection[T any](pool *pgxpool.Pool, name string) Collection[T] {
	return &postgresCollection[T]{
		name:  name,
		table: pgx.Identifier{name}.Sanitize(),
		pool:  pool,
	}
}

// NewPostgresCollections builds Postgres-backed collections for every resource.
func NewPostgresCollections(pool *pgxpool.Pool) Collections {
	return Collections{
		Accounts:  NewPostgresCollection[domain.Account](pool, CollectionAccounts),
		Orders:    NewPostgresCollection[domain.Order](pool, CollectionOrders),
		Products:  NewPostgresCollection[domain.Product](pool, CollectionProducts),
		Employees: NewPostgresCollection[domain.Employee](pool, CollectionEmployees),
	}
}

func (r *postgresCollection[T]) Name() string { return r.name }

func (r *postgresCollection[T]) Insert(ctx context.Context, doc *domain.Document[T]) error {
	ensureID(doc)
	body, err := json.Marshal(doc.Body)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (id, body)
        VALUES ($1, $2)
        ON CONFLICT (id) DO NOTHING
        RETURNING created_at, updated_at`, r.table)

	err = r.pool.QueryRow(ctx, query, doc.ID, body).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	return err
}

func (r *postgresCollection[T]) Get(ctx context.Context, id string) (*domain.Document[T], error) {
	query := fmt.Sprintf(`
        SELECT id, body, created_at, updated_at
        FROM %s WHERE id=$1`, r.table)

	doc, err := scanDocument[T](r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

func (r *postgresCollection[T]) List(ctx context.Context, page Page) ([]domain.Document[T], error) {
	page = page.Normalize()
	query := fmt.Sprintf(`
        SELECT id, body, created_at, updated_at
        FROM %s
        ORDER BY created_at, id
        LIMIT $1 OFFSET $2`, r.table)

	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Document[T], 0, page.Limit)
	for rows.Next() {
		doc, err := scanDocument[T](rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, rows.Err()
}

func (r *postgresCollection[T]) Replace(ctx context.Context, doc *domain.Document[T]) error {
	body, err := json.Marshal(doc.Body)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
        UPDATE %s SET body=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING created_at, updated_at`, r.table)

	err = r.pool.QueryRow(ctx, query, body, doc.ID).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *postgresCollection[T]) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, r.table), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument[T any](row pgx.Row) (*domain.Document[T], error) {
	var (
		doc  domain.Document[T]
		body []byte
	)
	if err := row.Scan(&doc.ID, &body, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &doc.Body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	return &doc, nil
}
