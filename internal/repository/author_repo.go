// репозиторий авторов статей
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

type AuthorRepository struct {
	pool catalog_interfaces.Pool
}

// конструктор для репозитория авторов
func NewAuthorRepository(pool catalog_interfaces.Pool) catalog_interfaces.AuthorRepoInterface {
	return &AuthorRepository{pool: pool}
}

func (a *AuthorRepository) ListAuthors(ctx context.Context, offset, limit int) ([]domain.Author, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	const countQuery = `SELECT COUNT(*) FROM authors`

	var total int64
	if err := a.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	const query = `
        SELECT a.id, a.name, a.affiliation,
               (SELECT COUNT(*) FROM paper_authors pa WHERE pa.author_id = a.id)
        FROM authors a
        ORDER BY a.name
        LIMIT $1 OFFSET $2
    `

	rows, err := a.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]domain.Author, 0)
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.Affiliation, &author.PaperCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author row: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("author rows iteration failed: %w", err)
	}

	return authors, total, nil
}

func (a *AuthorRepository) GetAuthorByID(ctx context.Context, id int64) (*domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT a.id, a.name, a.affiliation,
               (SELECT COUNT(*) FROM paper_authors pa WHERE pa.author_id = a.id)
        FROM authors a
        WHERE a.id = $1
        LIMIT 1
    `

	var author domain.Author
	err := a.pool.QueryRow(ctx, query, id).Scan(&author.ID, &author.Name, &author.Affiliation, &author.PaperCount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query author by id: %w", err)
	}

	return &author, nil
}

// метод получения статей конкретного автора (хронологический порядок)
func (a *AuthorRepository) ListPapersByAuthor(ctx context.Context, authorID int64) ([]domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = paperSelect + `
        JOIN paper_authors pa2 ON pa2.paper_id = p.id
        WHERE pa2.author_id = $1
        ORDER BY p.published_at DESC, p.id DESC
    `

	rows, err := a.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers by author: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}
