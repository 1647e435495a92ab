package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper_catalog/internal/jwt_service"
)

// ключи контекста gin для данных пользователя
const (
	CtxUserID = "user_id"
	CtxEmail  = "user_email"
	CtxRole   = "user_role"
)

// AuthMiddleware - строгая проверка access токена, без валидного токена запрос не проходит
func AuthMiddleware(jwtService *jwt_service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Получаем токен из заголовка
		authHeader := c.GetHeader("Authorization")

		// проверяем наличие токена в заголовке, если его нет, выдаём ошибку и не пускаем запрос дальше
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is required"})
			return
		}

		// Проверяем формат "Bearer <token>"
		tokenString, err := CheckBearerFormat(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}

		// Парсим токен
		claims, err := jwtService.ParseAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		// Добавляем данные пользователя в контекст
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// OptionalIdentityMiddleware - мягкое определение личности для листинга:
// отсутствующий или невалидный токен = анонимный пользователь, НЕ ошибка
// (персонализация и логирование поиска оба трактуют это как "anon")
func OptionalIdentityMiddleware(jwtService *jwt_service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := CheckBearerFormat(authHeader)
		if err != nil {
			c.Next()
			return
		}

		claims, err := jwtService.ParseAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

func CheckBearerFormat(authHeader string) (string, error) {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:], nil
	}
	return "", errors.New("invalid authorization header format")
}
