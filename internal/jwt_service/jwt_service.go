package jwt_service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"paper_catalog/configs"
	"paper_catalog/internal/domain"
)

// создаём парсер, который учитывает метод шифрования и подтверждение срока действия
var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{"HS256"}), // проверять только метод шифрования HS256
	jwt.WithExpirationRequired(),            // проверка наличия срока действия токена
)

// NewJWTService создаёт рабочий сервис с конфигом
func NewJWTService(config *configs.JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// метод структуры JWT для генерации пары токенов (access и refresh)
func (j *JWTService) GenerateTokens(user *domain.User) (domain.TokenPair, error) {
	// Access токен
	accessClaims := newClaims(j.config.AccessTokenExp, user, "access")
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(j.config.SecretAccKey))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	// Refresh токен
	refreshClaims := newClaims(j.config.RefreshTokenExp, user, "refresh")
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(j.config.SecretRefKey))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
	}, nil
}

// метод парсинга и проверки access токена
func (j *JWTService) ParseAccessToken(tokenString string) (*CustomClaims, error) {
	return parseToken(tokenString, j.config.SecretAccKey, "access")
}

// метод парсинга и проверки refresh токена
func (j *JWTService) ParseRefreshToken(tokenString string) (*CustomClaims, error) {
	return parseToken(tokenString, j.config.SecretRefKey, "refresh")
}

// время жизни refresh токена (нужно хранилищу токенов для TTL)
func (j *JWTService) RefreshTokenTTL() time.Duration {
	return j.config.RefreshTokenExp
}

// вспомогательная функция для создания структуры информации для JWT
func newClaims(tokenExp time.Duration, user *domain.User, tokenType string) CustomClaims {
	return CustomClaims{
		UserID:    strconv.FormatInt(user.ID, 10),
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "paper_catalog",
			ID:        uuid.New().String(),
		},
	}
}

// вспомогательная функция парсинга токена с клэймами и проверкой типа
func parseToken(tokenString, key, wantType string) (*CustomClaims, error) {
	token, err := parser.ParseWithClaims(
		tokenString,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(key), nil
		})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.TokenType != wantType {
		return nil, fmt.Errorf("invalid token type: expected %q, got %q", wantType, claims.TokenType)
	}

	return claims, nil
}
