// описание хэндлеров справочных разделов: авторы, области, статистика, AI
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paper_catalog/internal/ai_client"
	"paper_catalog/internal/catalog_server/converters"
	"paper_catalog/internal/catalog_server/dto"
	"paper_catalog/internal/catalog_server/service"
)

// описание интерфейса слоя справочных хэндлеров
type CatalogHandlerInterface interface {
	ListAuthorsHandler(c *gin.Context)
	GetAuthorHandler(c *gin.Context)
	ListFieldsHandler(c *gin.Context)
	GetFieldHandler(c *gin.Context)
	GetStatsHandler(c *gin.Context)
	AskAIHandler(c *gin.Context)
}

// структура справочного хэндлера
type CatalogHandler struct {
	service  service.CatalogServiceInterface
	aiClient *ai_client.AIClient
}

// конструктор для слоя справочных хэндлеров
func NewCatalogHandler(service service.CatalogServiceInterface, aiClient *ai_client.AIClient) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		aiClient: aiClient,
	}
}

// метод обработки GET запроса листинга авторов
func (h *CatalogHandler) ListAuthorsHandler(c *gin.Context) {
	var req dto.ListAuthorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if err := req.ValidateAndNormalize(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	authors, total, err := h.service.ListAuthors(c.Request.Context(), req.Page, req.Limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Authors listed successfully", gin.H{
		"authors": converters.AuthorsDomainToDTO(authors),
		"pagination": dto.PaginationResponse{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
			Pages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
		},
	})
}

// метод обработки GET запроса одного автора вместе с его статьями
func (h *CatalogHandler) GetAuthorHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid author id")
		return
	}

	author, papers, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, dto.APIResponse{Success: false, Message: "Author not found"})
		return
	}

	respondOK(c, http.StatusOK, "Author found", gin.H{
		"author": converters.AuthorDomainToDTO(*author),
		"papers": converters.PapersDomainToDTO(papers),
	})
}

// метод обработки GET запроса списка научных областей
func (h *CatalogHandler) ListFieldsHandler(c *gin.Context) {
	fields, err := h.service.ListFields(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Fields listed successfully", converters.FieldsDomainToDTO(fields))
}

// метод обработки GET запроса одной научной области
func (h *CatalogHandler) GetFieldHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid field id")
		return
	}

	field, err := h.service.GetField(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if field == nil {
		c.JSON(http.StatusNotFound, dto.APIResponse{Success: false, Message: "Field not found"})
		return
	}

	respondOK(c, http.StatusOK, "Field found", converters.FieldDomainToDTO(*field))
}

// метод обработки GET запроса сводной статистики каталога
func (h *CatalogHandler) GetStatsHandler(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Stats collected successfully", converters.StatsDomainToDTO(*stats))
}

// метод обработки POST запроса вопроса к AI сервису (прокси, ответ отдаётся как есть)
func (h *CatalogHandler) AskAIHandler(c *gin.Context) {
	var req dto.AskAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: question (3-2000 chars) is required")
		return
	}

	answer, err := h.aiClient.Ask(c.Request.Context(), req.Question)
	if err != nil {
		// внешний AI сервис недоступен - это не ошибка каталога
		c.JSON(http.StatusBadGateway, dto.APIResponse{
			Success: false,
			Message: "AI service is unavailable",
		})
		return
	}

	respondOK(c, http.StatusOK, "AI answered successfully", answer)
}
