// описание конфига для ленты статей: кэш ответов, рекомендательный сервис, логирование поиска
package configs

import (
	"time"
)

// структура конфига для кэша ответов листинга
type ResultCacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`         // время жизни записи в кэше
	MaxEntries int           `yaml:"max_entries"` // максимальное количество записей (FIFO вытеснение)
}

// структура конфига для клиента рекомендательного сервиса
type RecommenderConfig struct {
	BaseURL string        `yaml:"base_url"` // базовый URL рекомендательного сервиса
	Timeout time.Duration `yaml:"timeout"`  // жёсткий таймаут исходящего запроса
	TopN    int           `yaml:"top_n"`    // сколько ранжированных ID запрашиваем за раз
}

// структура конфига для отправки поисковых событий в аналитику
type SearchLogConfig struct {
	Endpoint     string        `yaml:"endpoint"`      // URL приёмника поисковых событий
	Timeout      time.Duration `yaml:"timeout"`       // таймаут одной попытки отправки
	DedupeWindow time.Duration `yaml:"dedupe_window"` // окно подавления повторных событий (user, query)
}

// общий конфиг ленты
type FeedConfig struct {
	Cache       ResultCacheConfig `yaml:"cache"`
	Recommender RecommenderConfig `yaml:"recommender"`
	SearchLog   SearchLogConfig   `yaml:"search_log"`
}

// функция для создания конфига ленты по - дефолту
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		Cache: ResultCacheConfig{
			TTL:        60 * time.Second,
			MaxEntries: 200,
		},
		Recommender: RecommenderConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 5 * time.Second,
			TopN:    50,
		},
		SearchLog: SearchLogConfig{
			Endpoint:     "http://localhost:8000/log_search",
			Timeout:      3 * time.Second,
			DedupeWindow: 30 * time.Second,
		},
	}
}
