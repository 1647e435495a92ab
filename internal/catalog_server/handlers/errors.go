// маппинг доменных ошибок в HTTP ответы
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper_catalog/internal/catalog_server/dto"
	"paper_catalog/internal/domain"
)

// APIError - машиночитаемая ошибка для фронтенда
type APIError struct {
	Code    string `json:"code"`    // для фронтенда: "PAPER_NOT_FOUND"
	Message string `json:"message"` // для пользователя
}

// функция - маппер для формирования ответа в зависимости от типа доменной ошибки
func ToAPIError(err error) (int, APIError) {
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, APIError{
			Code:    "USER_EXISTS",
			Message: "This email is already registered",
		}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, APIError{
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid email or password",
		}
	case errors.Is(err, domain.ErrPaperNotFound):
		return http.StatusNotFound, APIError{
			Code:    "PAPER_NOT_FOUND",
			Message: "Paper not found",
		}
	case errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, APIError{
			Code:    "REVIEW_NOT_FOUND",
			Message: "Review not found",
		}
	case errors.Is(err, domain.ErrNotReviewOwner):
		return http.StatusForbidden, APIError{
			Code:    "NOT_REVIEW_OWNER",
			Message: "You can only modify your own reviews",
		}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, APIError{
			Code:    "USER_NOT_FOUND",
			Message: "User not found",
		}
	default:
		return http.StatusInternalServerError, APIError{
			Code:    "INTERNAL_ERROR",
			Message: "Something went wrong",
		}
	}
}

// вспомогательная функция успешного ответа в едином конверте
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// вспомогательная функция ответа с ошибкой клиента (4xx)
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.APIResponse{
		Success: false,
		Message: message,
	})
}

// вспомогательная функция ответа по доменной ошибке
func respondDomainError(c *gin.Context, err error) {
	status, apiErr := ToAPIError(err)
	c.JSON(status, dto.APIResponse{
		Success: false,
		Message: apiErr.Message,
		Data:    apiErr,
	})
}
