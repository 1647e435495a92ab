// описание HTTP сервера каталога научных статей
package catalog_server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper_catalog/configs"
	"paper_catalog/internal/catalog_server/handlers"
	"paper_catalog/internal/jwt_service"
	"paper_catalog/internal/middleware"
)

// структура сервера каталога
type CatalogServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *configs.ServerConfig
	jwtService *jwt_service.JWTService

	AuthHandler    handlers.AuthHandlerInterface
	PapersHandler  handlers.PapersHandlerInterface
	ReviewsHandler handlers.ReviewsHandlerInterface
	CatalogHandler handlers.CatalogHandlerInterface
}

// Конструктор для сервера
func NewCatalogServer(
	config *configs.ServerConfig,
	jwtService *jwt_service.JWTService,
	authHandler handlers.AuthHandlerInterface,
	papersHandler handlers.PapersHandlerInterface,
	reviewsHandler handlers.ReviewsHandlerInterface,
	catalogHandler handlers.CatalogHandlerInterface,
) (*CatalogServer, error) {
	// создаём экземпляр роутера
	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	// Добавляем middleware для проброса request id
	router.Use(func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), "request_id", c.GetHeader("X-Request-ID"))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.Use(middleware.CORSMiddleware()) // используем для всех маршрутов работу с CORS

	return &CatalogServer{
		router:         router,
		config:         config,
		jwtService:     jwtService,
		AuthHandler:    authHandler,
		PapersHandler:  papersHandler,
		ReviewsHandler: reviewsHandler,
		CatalogHandler: catalogHandler,
	}, nil
}

// Метод для маршрутизации сервера
func (s *CatalogServer) SetUpRoutes() {
	// тестовый ендпоинт
	s.router.GET("/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from paper catalog server!"})
	})

	api := s.router.Group("/api")

	// аутентификация
	api.POST("/auth/register", s.AuthHandler.RegisterHandler)
	api.POST("/auth/login", s.AuthHandler.LoginHandler)
	api.POST("/auth/refresh", s.AuthHandler.RefreshHandler)

	// листинг открыт для всех, личность определяется мягко:
	// невалидный токен здесь НЕ ошибка, а анонимный просмотр
	optionalAuth := middleware.OptionalIdentityMiddleware(s.jwtService)
	api.GET("/papers", optionalAuth, s.PapersHandler.ListPapersHandler)
	api.GET("/papers/search", optionalAuth, s.PapersHandler.SearchPapersHandler)
	api.GET("/papers/:id", s.PapersHandler.GetPaperHandler)
	api.GET("/papers/:id/reviews", s.ReviewsHandler.ListReviewsHandler)

	// справочные разделы
	api.GET("/authors", s.CatalogHandler.ListAuthorsHandler)
	api.GET("/authors/:id", s.CatalogHandler.GetAuthorHandler)
	api.GET("/fields", s.CatalogHandler.ListFieldsHandler)
	api.GET("/fields/:id", s.CatalogHandler.GetFieldHandler)
	api.GET("/stats", s.CatalogHandler.GetStatsHandler)

	// защищённые эндпоинты
	strictAuth := middleware.AuthMiddleware(s.jwtService)
	api.POST("/papers/:id/download", strictAuth, s.PapersHandler.DownloadPaperHandler)
	api.POST("/papers/:id/reviews", strictAuth, s.ReviewsHandler.CreateReviewHandler)
	api.PUT("/reviews/:id", strictAuth, s.ReviewsHandler.UpdateReviewHandler)
	api.POST("/ai/ask", strictAuth, s.CatalogHandler.AskAIHandler)
}

// Метод для запуска сервера
func (s *CatalogServer) Run() error {
	s.SetUpRoutes()

	s.httpServer = &http.Server{
		Handler: s.router,
		Addr:    s.config.Addr(),
	}
	log.Printf("Starting HTTP server on %s", s.config.Addr())
	return s.httpServer.ListenAndServe()
}

// Метод для graceful shutdown
func (s *CatalogServer) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("Server shutdown completed")
	return nil
}
