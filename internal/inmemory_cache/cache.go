package inmemory_cache

import (
	"fmt"
	"time"
)

// конструктор для создания кэша с заданным TTL и лимитом записей
func NewBoundedTTLCache(ttl time.Duration, maxEntries int) (*BoundedTTLCache, error) {
	// Валидация входных параметров
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive, got %v", ttl)
	}

	if maxEntries <= 0 {
		return nil, fmt.Errorf("maxEntries must be positive, got %d", maxEntries)
	}

	// инициализируем базовую структуру кэша
	return &BoundedTTLCache{
		items:      make(map[string]CacheItem),
		order:      make([]string, 0, maxEntries),
		ttl:        ttl,
		maxEntries: maxEntries,
	}, nil
}

// метод получения значения из кэша по заданному ключу
// запись валидна только пока now - storedAt < TTL; протухшая запись читается как отсутствующая
// и удаляется как побочный эффект (ленивое вытеснение)
func (c *BoundedTTLCache) GetItem(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}

	// проверяем, не истёк ли TTL у значения
	if time.Since(item.storedAt) >= c.ttl {
		c.removeLocked(key)
		return nil, false
	}

	return item.value, true
}

// метод, чтобы записать значение в кэш с текущей отметкой времени
// если после вставки количество записей превышает лимит - вытесняем одну самую старую по порядку вставки
func (c *BoundedTTLCache) AddItem(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// перезапись существующего ключа считается новой вставкой (уходит в конец очереди)
	if _, ok := c.items[key]; ok {
		c.removeLocked(key)
	}

	c.items[key] = CacheItem{
		value:    value,
		storedAt: time.Now(),
	}
	c.order = append(c.order, key)

	// FIFO вытеснение самой старой записи при переполнении
	if len(c.items) > c.maxEntries {
		c.removeLocked(c.order[0])
	}
}

// метод удаления элемента из кэша по ключу (инвалидация после мутации)
func (c *BoundedTTLCache) DeleteItem(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// метод получения текущего количества записей в кэше
func (c *BoundedTTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// удаление записи и её позиции в очереди вставки; вызывается только под блокировкой
func (c *BoundedTTLCache) removeLocked(key string) {
	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
