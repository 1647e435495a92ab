// репозиторий научных областей
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

type FieldRepository struct {
	pool catalog_interfaces.Pool
}

// конструктор для репозитория научных областей
func NewFieldRepository(pool catalog_interfaces.Pool) catalog_interfaces.FieldRepoInterface {
	return &FieldRepository{pool: pool}
}

func (f *FieldRepository) ListFields(ctx context.Context) ([]domain.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT f.id, f.name,
               (SELECT COUNT(*) FROM papers p WHERE p.field_id = f.id)
        FROM fields f
        ORDER BY f.name
    `

	rows, err := f.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	fields := make([]domain.Field, 0)
	for rows.Next() {
		var field domain.Field
		if err := rows.Scan(&field.ID, &field.Name, &field.PaperCount); err != nil {
			return nil, fmt.Errorf("failed to scan field row: %w", err)
		}
		fields = append(fields, field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("field rows iteration failed: %w", err)
	}

	return fields, nil
}

func (f *FieldRepository) GetFieldByID(ctx context.Context, id int64) (*domain.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT f.id, f.name,
               (SELECT COUNT(*) FROM papers p WHERE p.field_id = f.id)
        FROM fields f
        WHERE f.id = $1
        LIMIT 1
    `

	var field domain.Field
	err := f.pool.QueryRow(ctx, query, id).Scan(&field.ID, &field.Name, &field.PaperCount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query field by id: %w", err)
	}

	return &field, nil
}
