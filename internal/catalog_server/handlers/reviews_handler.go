// описание хэндлеров отзывов на статьи
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paper_catalog/internal/catalog_server/converters"
	"paper_catalog/internal/catalog_server/dto"
	"paper_catalog/internal/catalog_server/service"
)

// описание интерфейса слоя хэндлеров отзывов
type ReviewsHandlerInterface interface {
	ListReviewsHandler(c *gin.Context)
	CreateReviewHandler(c *gin.Context)
	UpdateReviewHandler(c *gin.Context)
}

// структура хэндлера отзывов
type ReviewsHandler struct {
	service service.ReviewServiceInterface
}

// конструктор для слоя хэндлеров отзывов
func NewReviewsHandler(service service.ReviewServiceInterface) *ReviewsHandler {
	return &ReviewsHandler{
		service: service,
	}
}

// метод обработки GET запроса отзывов на статью
func (h *ReviewsHandler) ListReviewsHandler(c *gin.Context) {
	paperID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid paper id")
		return
	}

	reviews, err := h.service.ListByPaper(c.Request.Context(), paperID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Reviews listed successfully", converters.ReviewsDomainToDTO(reviews))
}

// метод обработки POST запроса создания отзыва (только для авторизованных)
func (h *ReviewsHandler) CreateReviewHandler(c *gin.Context) {
	paperID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid paper id")
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: rating must be in range [1, 5]")
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	review, err := h.service.Create(c.Request.Context(), paperID, userID, req.Rating, req.Comment)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Review created successfully", converters.ReviewDomainToDTO(*review))
}

// метод обработки PUT запроса обновления отзыва (только владелец)
func (h *ReviewsHandler) UpdateReviewHandler(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid review id")
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: rating must be in range [1, 5]")
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	review, err := h.service.Update(c.Request.Context(), reviewID, userID, req.Rating, req.Comment)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Review updated successfully", converters.ReviewDomainToDTO(*review))
}
