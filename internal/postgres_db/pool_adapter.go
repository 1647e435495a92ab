package postgres_db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"paper_catalog/internal/catalog_interfaces"
)

// Проверки реализации интерфейсов
var _ catalog_interfaces.Pool = (*PoolAdapter)(nil)
var _ catalog_interfaces.Rows = (*RowsAdapter)(nil)
var _ catalog_interfaces.Row = (*RowAdapter)(nil)

// PoolAdapter адаптирует *pgxpool.Pool к узкому интерфейсу catalog_interfaces.Pool
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (a *PoolAdapter) Close() error {
	a.pool.Close()
	return nil
}

func (a *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := a.pool.Exec(ctx, sql, args...)
	return tag.RowsAffected(), err
}

func (a *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) catalog_interfaces.Row {
	return a.pool.QueryRow(ctx, sql, args...)
}

func (a *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (catalog_interfaces.Rows, error) {
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &RowsAdapter{rows: rows}, nil
}

// RowAdapter адаптирует pgx.Row к интерфейсу catalog_interfaces.Row
type RowAdapter struct {
	row pgx.Row
}

func (r *RowAdapter) Scan(dest ...any) error {
	return r.row.Scan(dest...)
}

// RowsAdapter адаптирует pgx.Rows к интерфейсу catalog_interfaces.Rows
type RowsAdapter struct {
	rows pgx.Rows
}

func (r *RowsAdapter) Next() bool {
	return r.rows.Next()
}

func (r *RowsAdapter) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *RowsAdapter) Close() {
	r.rows.Close()
}

func (r *RowsAdapter) Err() error {
	return r.rows.Err()
}
