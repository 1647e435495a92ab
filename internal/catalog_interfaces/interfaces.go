// описание общих интерфейсов между слоями сервера каталога
package catalog_interfaces

import (
	"context"
	"time"

	"paper_catalog/internal/domain"
)

// интерфейс кэша результатов (process-local, инжектируется в сервисы)
type CacheInterface interface {
	GetItem(key string) (interface{}, bool)
	AddItem(key string, value interface{})
	DeleteItem(key string)
	Len() int
}

// интерфейс провайдера рекомендаций (внешний сервис)
// реализация обязана быть fail-open: при любой ошибке возвращается пустой список без ошибки
type RecommendationProvider interface {
	FetchRecommendations(ctx context.Context, userID string, topN int) []int64
}

// интерфейс приёмника поисковых событий (внешняя аналитика)
type AnalyticsSink interface {
	// LogSearch - синхронная доставка с дедупликацией и одним повтором, возвращает исход попытки
	LogSearch(ctx context.Context, event domain.SearchEvent) string
	// LogSearchDetached - fire-and-forget обёртка, ответ запроса её не ждёт
	LogSearchDetached(event domain.SearchEvent)
}

// узкий интерфейс пула соединений с базой (для подмены в тестах)
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// интерфейс хранилища статей: два паттерна доступа ленты + CRUD
type PaperRepoInterface interface {
	// ListPapers - отфильтрованная, отсортированная страница с полным количеством совпадений
	ListPapers(ctx context.Context, filter domain.PaperFilter, offset, limit int) ([]domain.Paper, int64, error)
	// GetPapersByIDs - пакетная выборка по набору ID (порядок НЕ гарантируется)
	GetPapersByIDs(ctx context.Context, ids []int64) ([]domain.Paper, error)
	GetPaperByID(ctx context.Context, id int64) (*domain.Paper, error)
	RecordDownload(ctx context.Context, paperID, userID int64) error
}

// интерфейс хранилища пользователей
type UserRepoInterface interface {
	AddUser(ctx context.Context, email, hashedPass string) (int64, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// интерфейс хранилища отзывов
type ReviewRepoInterface interface {
	ListByPaper(ctx context.Context, paperID int64) ([]domain.Review, error)
	Create(ctx context.Context, review domain.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id int64, rating int, comment string) error
}

// интерфейс хранилища авторов
type AuthorRepoInterface interface {
	ListAuthors(ctx context.Context, offset, limit int) ([]domain.Author, int64, error)
	GetAuthorByID(ctx context.Context, id int64) (*domain.Author, error)
	ListPapersByAuthor(ctx context.Context, authorID int64) ([]domain.Paper, error)
}

// интерфейс хранилища научных областей
type FieldRepoInterface interface {
	ListFields(ctx context.Context) ([]domain.Field, error)
	GetFieldByID(ctx context.Context, id int64) (*domain.Field, error)
}

// интерфейс статистики каталога
type StatsRepoInterface interface {
	GetCatalogStats(ctx context.Context) (*domain.CatalogStats, error)
}

// интерфейс хранилища refresh токенов (Redis)
type TokenRepoInterface interface {
	SaveRefreshToken(ctx context.Context, userID int64, tokenHash string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	DeleteRefreshToken(ctx context.Context, userID int64) error
	Close() error
}
