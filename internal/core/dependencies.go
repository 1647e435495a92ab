// описание и инициализация всех зависимостей сервера каталога
package core

import (
	"context"
	"fmt"

	"paper_catalog/configs"
	"paper_catalog/internal/ai_client"
	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/catalog_server/handlers"
	"paper_catalog/internal/catalog_server/service"
	"paper_catalog/internal/inmemory_cache"
	"paper_catalog/internal/jwt_service"
	"paper_catalog/internal/postgres_db"
	"paper_catalog/internal/recommender"
	"paper_catalog/internal/repository"
	"paper_catalog/internal/search_logger"
)

// CatalogDependencies содержит все зависимости сервера каталога
type CatalogDependencies struct {
	Config      *configs.CatalogConfig
	ResultCache catalog_interfaces.CacheInterface
	PgRepo      *postgres_db.PgRepo
	TokenRepo   catalog_interfaces.TokenRepoInterface
	JWTService  *jwt_service.JWTService

	AuthHandler    *handlers.AuthHandler
	PapersHandler  *handlers.PapersHandler
	ReviewsHandler *handlers.ReviewsHandler
	CatalogHandler *handlers.CatalogHandler
}

// InitDependencies инициализирует зависимости сервера каталога
func InitDependencies(ctx context.Context) (*CatalogDependencies, error) {
	// Получаем конфигурацию
	conf, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// создаём экземпляр inmemory cache для ответов листинга и деталей статей
	resultCache, err := inmemory_cache.NewBoundedTTLCache(conf.Feed.Cache.TTL, conf.Feed.Cache.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	// подключаемся к Postgres
	pgRepo, err := postgres_db.NewPgRepo(ctx, conf.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	pool := postgres_db.NewPoolAdapter(pgRepo.GetPool())

	// подключаемся к Redis для хранения refresh токенов
	tokenRepo, err := repository.NewTokenRepository(conf.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// создаём репозитории поверх пула
	paperRepo := repository.NewPaperRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	authorRepo := repository.NewAuthorRepository(pool)
	fieldRepo := repository.NewFieldRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	// клиенты внешних сервисов
	recommenderClient := recommender.NewRecommendationClient(&conf.Feed.Recommender)
	searchLogger := search_logger.NewSearchLogger(&conf.Feed.SearchLog)
	aiClient := ai_client.NewAIClient(conf.AI)

	// сервис JWT токенов
	jwtService := jwt_service.NewJWTService(conf.JWT)

	// создаём сервисный слой
	feedService := service.NewFeedService(paperRepo, resultCache, recommenderClient, searchLogger, conf.Feed.Recommender.TopN)
	authService := service.NewAuthService(userRepo, tokenRepo, jwtService)
	reviewService := service.NewReviewService(reviewRepo, paperRepo, resultCache)
	catalogService := service.NewCatalogService(authorRepo, fieldRepo, statsRepo, resultCache)

	// создаём слой хэндлеров
	authHandler := handlers.NewAuthHandler(authService)
	papersHandler := handlers.NewPapersHandler(feedService)
	reviewsHandler := handlers.NewReviewsHandler(reviewService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, aiClient)

	// возвращаем указатель на структуру зависимостей
	return &CatalogDependencies{
		Config:         conf,
		ResultCache:    resultCache,
		PgRepo:         pgRepo,
		TokenRepo:      tokenRepo,
		JWTService:     jwtService,
		AuthHandler:    authHandler,
		PapersHandler:  papersHandler,
		ReviewsHandler: reviewsHandler,
		CatalogHandler: catalogHandler,
	}, nil
}

// Close освобождает внешние ресурсы (Postgres, Redis)
func (d *CatalogDependencies) Close() {
	if d.PgRepo != nil {
		d.PgRepo.Close()
	}
	if d.TokenRepo != nil {
		_ = d.TokenRepo.Close()
	}
}
