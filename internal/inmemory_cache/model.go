package inmemory_cache

import (
	"sync"
	"time"
)

// основная структура inmemory cache для кэширования ответов листинга
// кэш ограничен по количеству записей, при переполнении вытесняется самая старая по ПОРЯДКУ ВСТАВКИ запись (FIFO, не LRU)
type BoundedTTLCache struct {
	mu         sync.Mutex
	items      map[string]CacheItem
	order      []string // порядок вставки ключей для FIFO вытеснения
	ttl        time.Duration
	maxEntries int
}

// структура отдельного элемента inmemory cache
type CacheItem struct {
	value    interface{}
	storedAt time.Time
}
