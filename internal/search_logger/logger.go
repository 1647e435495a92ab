// отправка поисковых событий во внешнюю аналитику (best-effort телеметрия)
package search_logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"paper_catalog/configs"
	"paper_catalog/internal/domain"
)

// исходы попытки логирования (наблюдаемы только тестами и диагностикой, не HTTP-ответом)
const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// структура отправителя поисковых событий
// дедупликация: повторное событие с тем же ключом (user, query) внутри окна подавляется без сетевого I/O
// доставка: одна попытка + ровно один повтор, каждый со своим таймаутом; вторая неудача - только локальный лог
type SearchLogger struct {
	endpoint     string
	timeout      time.Duration
	dedupeWindow time.Duration
	httpClient   *http.Client

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// структура события в формате приёмника аналитики
type searchEventPayload struct {
	UserID    string `json:"user_id"`
	Query     string `json:"query"`
	UserAgent string `json:"user_agent"`
	ClientIP  string `json:"client_ip"`
	Timestamp string `json:"timestamp"`
}

// конструктор для отправителя поисковых событий
func NewSearchLogger(cfg *configs.SearchLogConfig) *SearchLogger {
	return &SearchLogger{
		endpoint:     cfg.Endpoint,
		timeout:      cfg.Timeout,
		dedupeWindow: cfg.DedupeWindow,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		lastSent: make(map[string]time.Time),
	}
}

// метод синхронной доставки события с дедупликацией и одним повтором
func (s *SearchLogger) LogSearch(ctx context.Context, event domain.SearchEvent) string {
	key := dedupeKey(event)
	now := time.Now()

	// проверка окна дедупликации (единственное общее изменяемое состояние)
	s.mu.Lock()
	if last, ok := s.lastSent[key]; ok && now.Sub(last) < s.dedupeWindow {
		s.mu.Unlock()
		return OutcomeSkipped
	}
	s.lastSent[key] = now
	s.mu.Unlock()

	// после каждой попытки логирования попутно чистим устаревшие записи дедупликации
	defer s.purgeStale()

	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}

	payload, err := json.Marshal(searchEventPayload{
		UserID:    event.UserID,
		Query:     event.Query,
		UserAgent: event.UserAgent,
		ClientIP:  event.ClientIP,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("search_logger: marshal event failed: %v", err)
		return OutcomeFailed
	}

	// первая попытка + ровно один повтор с тем же таймаутом
	if err := s.deliver(ctx, payload); err == nil {
		return OutcomeSent
	}

	if err := s.deliver(ctx, payload); err == nil {
		return OutcomeSent
	} else {
		// вторая неудача - событие молча отбрасывается, телеметрия не должна влиять на пользователя
		log.Printf("search_logger: delivery failed after retry, dropping event (user=%s): %v", event.UserID, err)
	}

	return OutcomeFailed
}

// метод fire-and-forget отправки: запускаем доставку в отдельной горутине и НЕ ждём её
// у задачи своя граница ошибок, путь HTTP-ответа никогда не наблюдает её исход
func (s *SearchLogger) LogSearchDetached(event domain.SearchEvent) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("search_logger: detached task panic: %v", r)
			}
		}()

		s.LogSearch(context.Background(), event)
	}()
}

// одна попытка доставки события с собственным таймаутом
func (s *SearchLogger) deliver(ctx context.Context, payload []byte) error {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}

	return nil
}

// чистка записей дедупликации старше 4х окон
func (s *SearchLogger) purgeStale() {
	cutoff := time.Now().Add(-4 * s.dedupeWindow)

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, sentAt := range s.lastSent {
		if sentAt.Before(cutoff) {
			delete(s.lastSent, key)
		}
	}
}

// ключ дедупликации: (userId или "anon") + строка запроса
func dedupeKey(event domain.SearchEvent) string {
	user := event.UserID
	if user == "" {
		user = "anon"
	}
	return user + ":" + event.Query
}
