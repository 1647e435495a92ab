// сервисный слой справочных разделов каталога: авторы, области, статистика
package service

import (
	"context"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

// описание интерфейса справочного сервиса
type CatalogServiceInterface interface {
	ListAuthors(ctx context.Context, page, limit int) ([]domain.Author, int64, error)
	GetAuthor(ctx context.Context, id int64) (*domain.Author, []domain.Paper, error)
	ListFields(ctx context.Context) ([]domain.Field, error)
	GetField(ctx context.Context, id int64) (*domain.Field, error)
	GetStats(ctx context.Context) (*domain.CatalogStats, error)
}

// описание структуры справочного сервиса
type CatalogService struct {
	authorRepo catalog_interfaces.AuthorRepoInterface
	fieldRepo  catalog_interfaces.FieldRepoInterface
	statsRepo  catalog_interfaces.StatsRepoInterface
	cache      catalog_interfaces.CacheInterface
}

// ключи кэша справочных разделов
const (
	fieldsCacheKey = "fields:all"
	statsCacheKey  = "stats:summary"
)

// конструктор справочного сервиса
func NewCatalogService(
	authorRepo catalog_interfaces.AuthorRepoInterface,
	fieldRepo catalog_interfaces.FieldRepoInterface,
	statsRepo catalog_interfaces.StatsRepoInterface,
	cache catalog_interfaces.CacheInterface,
) *CatalogService {
	return &CatalogService{
		authorRepo: authorRepo,
		fieldRepo:  fieldRepo,
		statsRepo:  statsRepo,
		cache:      cache,
	}
}

// метод получения страницы авторов
func (s *CatalogService) ListAuthors(ctx context.Context, page, limit int) ([]domain.Author, int64, error) {
	offset := (page - 1) * limit
	return s.authorRepo.ListAuthors(ctx, offset, limit)
}

// метод получения автора вместе с его статьями
func (s *CatalogService) GetAuthor(ctx context.Context, id int64) (*domain.Author, []domain.Paper, error) {
	author, err := s.authorRepo.GetAuthorByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	papers, err := s.authorRepo.ListPapersByAuthor(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return author, papers, nil
}

// метод получения списка научных областей
// список меняется редко, поэтому отдаётся через общий TTL кэш
func (s *CatalogService) ListFields(ctx context.Context) ([]domain.Field, error) {
	if cached, ok := s.cache.GetItem(fieldsCacheKey); ok {
		if fields, ok := cached.([]domain.Field); ok {
			return fields, nil
		}
	}

	fields, err := s.fieldRepo.ListFields(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.AddItem(fieldsCacheKey, fields)
	return fields, nil
}

// метод получения одной научной области
func (s *CatalogService) GetField(ctx context.Context, id int64) (*domain.Field, error) {
	return s.fieldRepo.GetFieldByID(ctx, id)
}

// метод получения сводной статистики каталога
func (s *CatalogService) GetStats(ctx context.Context) (*domain.CatalogStats, error) {
	if cached, ok := s.cache.GetItem(statsCacheKey); ok {
		if stats, ok := cached.(*domain.CatalogStats); ok {
			return stats, nil
		}
	}

	stats, err := s.statsRepo.GetCatalogStats(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.AddItem(statsCacheKey, stats)
	return stats, nil
}
