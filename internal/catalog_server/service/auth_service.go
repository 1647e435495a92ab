// сервисный слой аутентификации каталога
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
	"paper_catalog/internal/jwt_service"
)

// описание интерфейса сервиса аутентификации
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
}

// описание структуры сервиса аутентификации
type AuthService struct {
	userRepo  catalog_interfaces.UserRepoInterface
	tokenRepo catalog_interfaces.TokenRepoInterface
	jwt       *jwt_service.JWTService
}

// конструктор сервиса аутентификации
func NewAuthService(
	userRepo catalog_interfaces.UserRepoInterface,
	tokenRepo catalog_interfaces.TokenRepoInterface,
	jwt *jwt_service.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwt:       jwt,
	}
}

// метод регистрации пользователя, возвращает ID нового пользователя
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	// проверяем не отменен ли контекст
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// хешируем пароль (bcrypt сам добавляет соль)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	// пробуем добавить нового пользователя; занятый email отдаёт доменную ошибку
	userID, err := s.userRepo.AddUser(ctx, email, string(hashedPassword))
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// метод входа пользователя: проверка пароля и выдача пары токенов
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return domain.TokenPair{}, err
	}

	// несуществующий пользователь и неверный пароль дают ОДНУ ошибку,
	// чтобы ответ не раскрывал наличие учётной записи
	if user == nil {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// метод обновления пары токенов по refresh токену (с ротацией)
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	// сверяем хеш предъявленного токена с хешом в хранилище:
	// после ротации старый refresh токен использовать нельзя
	storedHash, err := s.tokenRepo.GetRefreshToken(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to read stored refresh token: %w", err)
	}
	if storedHash == "" || storedHash != hashToken(refreshToken) {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if user == nil {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// выдача новой пары токенов с записью хеша refresh токена в хранилище
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (domain.TokenPair, error) {
	pair, err := s.jwt.GenerateTokens(user)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// храним только хеш: утечка хранилища токенов не даёт готовых refresh токенов
	err = s.tokenRepo.SaveRefreshToken(ctx, user.ID, hashToken(pair.RefreshToken), s.jwt.RefreshTokenTTL())
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return pair, nil
}

// хеш refresh токена для хранения
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
