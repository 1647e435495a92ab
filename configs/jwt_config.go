// описание конфига для JWT токенов
package configs

import (
	"fmt"
	"time"
)

// Конфигурация JWTConfig
type JWTConfig struct {
	SecretAccKey    string        // секретный ключ для access токена
	SecretRefKey    string        // секретный ключ для refresh токена
	AccessTokenExp  time.Duration // время жизни для access токена (обычно около 15 мин)
	RefreshTokenExp time.Duration // время жизни для refresh токена (обычно дни ...)
}

// NewJWTConfigFromEnv создает конфиг JWT из переменных окружения (без дефолтов для секретов!)
func NewJWTConfigFromEnv() (*JWTConfig, error) {
	accKey, err := getRequiredEnv("JWT_ACCESS_SECRET")
	if err != nil {
		return nil, err
	}

	refKey, err := getRequiredEnv("JWT_REFRESH_SECRET")
	if err != nil {
		return nil, err
	}

	accessExp, err := getEnvAsDurationWithValidation("JWT_ACCESS_TOKEN_EXP", 15*time.Minute, 1*time.Minute, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	refreshExp, err := getEnvAsDurationWithValidation("JWT_REFRESH_TOKEN_EXP", 7*24*time.Hour, 1*time.Hour, 90*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &JWTConfig{
		SecretAccKey:    accKey,
		SecretRefKey:    refKey,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
	}

	if err := validateJWTConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid JWT config: %w", err)
	}

	return cfg, nil
}

// validateJWTConfig - строгая валидация
func validateJWTConfig(cfg *JWTConfig) error {
	// 1. Минимальная длина ключей (рекомендация: 32+ символа)
	if len(cfg.SecretAccKey) < 32 {
		return fmt.Errorf("JWT_ACCESS_SECRET too short (min 32 chars)")
	}
	if len(cfg.SecretRefKey) < 32 {
		return fmt.Errorf("JWT_REFRESH_SECRET too short (min 32 chars)")
	}

	// 2. Ключи должны быть разными
	if cfg.SecretAccKey == cfg.SecretRefKey {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be different")
	}

	// 3. Refresh должен жить дольше Access
	if cfg.RefreshTokenExp <= cfg.AccessTokenExp {
		return fmt.Errorf("JWT_REFRESH_TOKEN_EXP must be longer than JWT_ACCESS_TOKEN_EXP")
	}

	return nil
}
