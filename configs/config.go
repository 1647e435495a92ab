// описание общего конфига для сервера каталога статей
package configs

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type CatalogConfig struct {
	Server   *ServerConfig
	Postgres *PostgresDBConfig
	Redis    *RedisConfig
	JWT      *JWTConfig
	Feed     *FeedConfig
	AI       *AIConfig
}

// загружаем конфиг-данные из .env и yml файлов
func LoadConfig() (*CatalogConfig, error) {
	// .env может отсутствовать (например в контейнере переменные приходят из окружения)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Не удалось загрузить .env: %s\n", err.Error())
	}

	serverConfig, err := LoadYAMLConfig[ServerConfig](os.Getenv("SERVER_CONFIG_ADDRESS_STRING"), UseDefaultServerConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading server config: %w", err)
	}

	feedConfig, err := LoadYAMLConfig[FeedConfig](os.Getenv("FEED_CONFIG_ADDRESS_STRING"), DefaultFeedConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading feed config: %w", err)
	}

	aiConfig, err := LoadYAMLConfig[AIConfig](os.Getenv("AI_CONFIG_ADDRESS_STRING"), DefaultAIConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading AI config: %w", err)
	}

	postgresConfig, err := NewPostgresDBConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading postgres config: %w", err)
	}

	redisConfig, err := NewRedisConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading redis config: %w", err)
	}

	jwtConfig, err := NewJWTConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading JWT config: %w", err)
	}

	return &CatalogConfig{
		Server:   serverConfig,
		Postgres: postgresConfig,
		Redis:    redisConfig,
		JWT:      jwtConfig,
		Feed:     feedConfig,
		AI:       aiConfig,
	}, nil
}
