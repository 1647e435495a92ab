// репозиторий статей: два паттерна доступа для ленты + чтение деталей и запись скачиваний
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

type PaperRepository struct {
	pool catalog_interfaces.Pool
}

// конструктор для репозитория статей
func NewPaperRepository(pool catalog_interfaces.Pool) catalog_interfaces.PaperRepoInterface {
	return &PaperRepository{pool: pool}
}

// общий SELECT статьи со всеми атрибутами листинга
// авторы и статистика отзывов собираются подзапросами, чтобы JOIN авторов не раздувал агрегаты
const paperSelect = `
        SELECT p.id, p.title, p.abstract, p.field_id, f.name,
               COALESCE((SELECT array_agg(a.name ORDER BY a.name)
                         FROM paper_authors pa
                         JOIN authors a ON a.id = pa.author_id
                         WHERE pa.paper_id = p.id), '{}'),
               p.published_at,
               (SELECT COUNT(*) FROM downloads d WHERE d.paper_id = p.id),
               (SELECT COUNT(*) FROM reviews r WHERE r.paper_id = p.id),
               COALESCE((SELECT AVG(r.rating)::float8 FROM reviews r WHERE r.paper_id = p.id), 0),
               p.created_at
        FROM papers p
        JOIN fields f ON f.id = p.field_id
    `

// условие фильтрации листинга: нулевые значения параметров отключают фильтр
const paperFilterWhere = `
        WHERE ($1::bigint = 0 OR p.field_id = $1)
          AND ($2::text = '' OR p.title ILIKE '%' || $2 || '%' OR p.abstract ILIKE '%' || $2 || '%')
    `

// метод получения отфильтрованной, отсортированной страницы статей + полное количество совпадений
func (p *PaperRepository) ListPapers(ctx context.Context, filter domain.PaperFilter, offset, limit int) ([]domain.Paper, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	// полный размер отфильтрованного корпуса
	const countQuery = `SELECT COUNT(*) FROM papers p` + paperFilterWhere

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, filter.FieldID, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count papers: %w", err)
	}

	// стандартный порядок ленты - хронологический (свежие первыми)
	const pageQuery = paperSelect + paperFilterWhere + `
        ORDER BY p.published_at DESC, p.id DESC
        LIMIT $3 OFFSET $4
    `

	rows, err := p.pool.Query(ctx, pageQuery, filter.FieldID, filter.Search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query papers page: %w", err)
	}
	defer rows.Close()

	papers, err := scanPapers(rows)
	if err != nil {
		return nil, 0, err
	}

	return papers, total, nil
}

// метод пакетной выборки статей по набору ID
// ВАЖНО: порядок строк в ответе базы НЕ гарантирован, вызывающий код обязан пересортировать сам
func (p *PaperRepository) GetPapersByIDs(ctx context.Context, ids []int64) ([]domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []domain.Paper{}, nil
	}

	const query = paperSelect + ` WHERE p.id = ANY($1)`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers by ids: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// метод получения одной статьи по ID
func (p *PaperRepository) GetPaperByID(ctx context.Context, id int64) (*domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = paperSelect + ` WHERE p.id = $1 LIMIT 1`

	var paper domain.Paper
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&paper.ID,
		&paper.Title,
		&paper.Abstract,
		&paper.FieldID,
		&paper.FieldName,
		&paper.Authors,
		&paper.PublishedAt,
		&paper.DownloadCount,
		&paper.ReviewCount,
		&paper.AvgRating,
		&paper.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaperNotFound
		}
		return nil, fmt.Errorf("failed to query paper by id: %w", err)
	}

	return &paper, nil
}

// метод записи факта скачивания статьи
func (p *PaperRepository) RecordDownload(ctx context.Context, paperID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	const query = `
        INSERT INTO downloads (paper_id, user_id, created_at)
        VALUES ($1, $2, $3)
    `

	if _, err := p.pool.Exec(ctx, query, paperID, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}

	return nil
}

// вспомогательная функция сканирования строк результата в доменные структуры
func scanPapers(rows catalog_interfaces.Rows) ([]domain.Paper, error) {
	papers := make([]domain.Paper, 0)

	for rows.Next() {
		var paper domain.Paper
		if err := rows.Scan(
			&paper.ID,
			&paper.Title,
			&paper.Abstract,
			&paper.FieldID,
			&paper.FieldName,
			&paper.Authors,
			&paper.PublishedAt,
			&paper.DownloadCount,
			&paper.ReviewCount,
			&paper.AvgRating,
			&paper.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan paper row: %w", err)
		}
		papers = append(papers, paper)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("paper rows iteration failed: %w", err)
	}

	return papers, nil
}
