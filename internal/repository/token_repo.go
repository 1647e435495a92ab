// хранилище refresh токенов на базе Redis
package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"paper_catalog/configs"
	"paper_catalog/internal/catalog_interfaces"
)

type TokenRepository struct {
	client *redis.Client
}

// конструктор для хранилища токенов
func NewTokenRepository(cfg *configs.RedisConfig) (catalog_interfaces.TokenRepoInterface, error) {
	// проверяем, что конфиг редиса не nil
	if cfg == nil {
		return nil, fmt.Errorf("redis config is nil")
	}

	// создаём клиента redis на основе опций из конфига
	client := redis.NewClient(cfg.ToRedisOptions())

	// Проверяем подключение
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("Connected to Redis at %s:%s (DB: %d)", cfg.Host, cfg.Port, cfg.DB)

	return &TokenRepository{
		client: client,
	}, nil
}

// метод для завершения работы клиента redis
func (t *TokenRepository) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// метод сохранения хэша refresh токена пользователя (TTL = времени жизни refresh токена)
func (t *TokenRepository) SaveRefreshToken(ctx context.Context, userID int64, tokenHash string, ttl time.Duration) error {
	return t.client.Set(ctx, refreshTokenKey(userID), tokenHash, ttl).Err()
}

// метод получения сохранённого хэша refresh токена; пустая строка - токен не сохранён или истёк
func (t *TokenRepository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	val, err := t.client.Get(ctx, refreshTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return val, nil
}

// метод удаления refresh токена (отзыв при logout или ротации)
func (t *TokenRepository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	return t.client.Del(ctx, refreshTokenKey(userID)).Err()
}

func refreshTokenKey(userID int64) string {
	return "refresh_token:" + strconv.FormatInt(userID, 10)
}
