// описание хэндлеров аутентификации
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paper_catalog/internal/catalog_server/dto"
	"paper_catalog/internal/catalog_server/service"
)

// описание интерфейса слоя хэндлеров аутентификации
type AuthHandlerInterface interface {
	RegisterHandler(c *gin.Context)
	LoginHandler(c *gin.Context)
	RefreshHandler(c *gin.Context)
}

// структура хэндлера аутентификации
type AuthHandler struct {
	service service.AuthServiceInterface
}

// конструктор для слоя хэндлеров аутентификации
func NewAuthHandler(service service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// метод обработки POST запроса регистрации нового пользователя
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	// проверка того, что JSON из запроса мапится в нужную структуру (binding теги делают валидацию)
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: email and password (8-72 chars) are required")
		return
	}

	// вызываем метод сервиса для регистрации нового пользователя
	userID, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// в ответе пользователю отдаём сообщение и ID пользователя
	respondOK(c, http.StatusCreated, "User registered successfully", dto.RegisterResponse{
		UserID: userID,
		Email:  req.Email,
	})
}

// метод обработки POST запроса входа, в ответе: пара JWT токенов
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: email and password are required")
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	})
}

// метод обработки POST запроса обновления пары токенов по refresh токену
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: refresh_token is required")
		return
	}

	// проверяем не отменён ли контекст
	if c.Request.Context().Err() != nil {
		c.JSON(http.StatusRequestTimeout, dto.APIResponse{Success: false, Message: "Request cancelled"})
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Tokens refreshed successfully", dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	})
}
