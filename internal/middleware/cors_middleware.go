package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware - настройка CORS для фронтенда каталога
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Список разрешенных доменов
		allowedOrigins := []string{
			"http://localhost:8080",
			"http://localhost:3000",
		}

		origin := c.Request.Header.Get("Origin")

		// Если Origin не указан (например, запрос из curl или postman)
		if origin == "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			// Проверяем по списку разрешенных
			isAllowed := false
			for _, allowed := range allowedOrigins {
				if allowed == origin {
					isAllowed = true
					break
				}
			}
			if isAllowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")

		// Preflight запрос завершаем сразу
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
