// репозиторий сводной статистики каталога
package repository

import (
	"context"
	"fmt"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

type StatsRepository struct {
	pool catalog_interfaces.Pool
}

// конструктор для репозитория статистики
func NewStatsRepository(pool catalog_interfaces.Pool) catalog_interfaces.StatsRepoInterface {
	return &StatsRepository{pool: pool}
}

func (s *StatsRepository) GetCatalogStats(ctx context.Context) (*domain.CatalogStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const countsQuery = `
        SELECT
            (SELECT COUNT(*) FROM papers),
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM downloads),
            (SELECT COUNT(*) FROM reviews)
    `

	var stats domain.CatalogStats
	err := s.pool.QueryRow(ctx, countsQuery).Scan(
		&stats.TotalPapers,
		&stats.TotalUsers,
		&stats.TotalDownloads,
		&stats.TotalReviews,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog counts: %w", err)
	}

	// топ-5 самых скачиваемых статей
	const topQuery = paperSelect + `
        ORDER BY (SELECT COUNT(*) FROM downloads d WHERE d.paper_id = p.id) DESC, p.id
        LIMIT 5
    `

	rows, err := s.pool.Query(ctx, topQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query top downloaded papers: %w", err)
	}
	defer rows.Close()

	top, err := scanPapers(rows)
	if err != nil {
		return nil, err
	}
	stats.TopDownloaded = top

	return &stats, nil
}
