// описание хэндлеров листинга и деталей статей
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paper_catalog/internal/catalog_server/converters"
	"paper_catalog/internal/catalog_server/dto"
	"paper_catalog/internal/catalog_server/service"
	"paper_catalog/internal/middleware"
)

// описание интерфейса слоя хэндлеров статей
type PapersHandlerInterface interface {
	ListPapersHandler(c *gin.Context)
	SearchPapersHandler(c *gin.Context)
	GetPaperHandler(c *gin.Context)
	DownloadPaperHandler(c *gin.Context)
}

// структура хэндлера статей
type PapersHandler struct {
	service service.FeedServiceInterface
}

// конструктор для слоя хэндлеров статей
func NewPapersHandler(service service.FeedServiceInterface) *PapersHandler {
	return &PapersHandler{
		service: service,
	}
}

// метод обработки GET запроса листинга статей
// персонализация и кэширование целиком живут в сервисном слое
func (h *PapersHandler) ListPapersHandler(c *gin.Context) {
	var req dto.ListPapersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	// валидация и нормализация параметров листинга
	if err := req.ValidateAndNormalize(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListFeed(c.Request.Context(), service.FeedParams{
		Page:      req.Page,
		Limit:     req.Limit,
		FieldID:   req.FieldID,
		Search:    req.Search,
		UserID:    c.GetString(middleware.CtxUserID),
		UserAgent: c.Request.UserAgent(),
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Papers listed successfully", converters.FeedPageDomainToDTO(page))
}

// метод обработки GET запроса поиска статей (поисковый текст обязателен)
func (h *PapersHandler) SearchPapersHandler(c *gin.Context) {
	var req dto.SearchPapersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if err := req.ValidateAndNormalize(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListFeed(c.Request.Context(), service.FeedParams{
		Page:      req.Page,
		Limit:     req.Limit,
		FieldID:   req.FieldID,
		Search:    req.Query,
		UserID:    c.GetString(middleware.CtxUserID),
		UserAgent: c.Request.UserAgent(),
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Search completed successfully", converters.FeedPageDomainToDTO(page))
}

// метод обработки GET запроса деталей одной статьи
func (h *PapersHandler) GetPaperHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid paper id")
		return
	}

	paper, err := h.service.GetPaperDetail(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Paper found", converters.PaperDomainToDTO(*paper))
}

// метод обработки POST запроса записи скачивания (только для авторизованных)
func (h *PapersHandler) DownloadPaperHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid paper id")
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := h.service.RecordDownload(c.Request.Context(), id, userID); err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Download recorded", nil)
}

// вспомогательная функция парсинга числового path параметра
func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// вспомогательная функция получения ID авторизованного пользователя из контекста gin
func currentUserID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.GetString(middleware.CtxUserID), 10, 64)
}
