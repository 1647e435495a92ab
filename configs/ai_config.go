// описание конфига для прокси к внешнему AI/RAG сервису
package configs

import (
	"time"
)

type AIConfig struct {
	BaseURL string        `yaml:"base_url"` // базовый URL внешнего AI сервиса
	Timeout time.Duration `yaml:"timeout"`  // таймаут ожидания ответа AI сервиса
}

// функция для создания конфига AI прокси по - дефолту
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
	}
}
