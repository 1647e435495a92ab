package jwt_service

import (
	"github.com/golang-jwt/jwt/v5"

	"paper_catalog/configs"
)

// JWTService - рабочий сервис с методами
type JWTService struct {
	config *configs.JWTConfig // Конфиг внутри сервиса
}

// CustomClaims для JWT
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"type"` // "access" или "refresh"
	jwt.RegisteredClaims
}
