package search_logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paper_catalog/configs"
	"paper_catalog/internal/domain"
)

func newTestLogger(endpoint string, dedupeWindow time.Duration) *SearchLogger {
	return NewSearchLogger(&configs.SearchLogConfig{
		Endpoint:     endpoint,
		Timeout:      time.Second,
		DedupeWindow: dedupeWindow,
	})
}

func testEvent(userID, query string) domain.SearchEvent {
	return domain.SearchEvent{
		UserID:    userID,
		Query:     query,
		UserAgent: "test-agent",
		ClientIP:  "127.0.0.1",
	}
}

// два события с одинаковым (user, query) внутри окна = ровно одна доставка
func TestLogSearchDedupe(t *testing.T) {
	var calls int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := newTestLogger(server.URL, 30*time.Second)

	outcome1 := logger.LogSearch(context.Background(), testEvent("42", "neural networks"))
	outcome2 := logger.LogSearch(context.Background(), testEvent("42", "neural networks"))

	assert.Equal(t, OutcomeSent, outcome1)
	assert.Equal(t, OutcomeSkipped, outcome2)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	// другой пользователь с тем же запросом - отдельный ключ дедупликации
	outcome3 := logger.LogSearch(context.Background(), testEvent("7", "neural networks"))
	assert.Equal(t, OutcomeSent, outcome3)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

// после истечения окна дедупликации событие отправляется повторно
func TestLogSearchDedupeWindowExpires(t *testing.T) {
	var calls int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := newTestLogger(server.URL, 50*time.Millisecond)

	logger.LogSearch(context.Background(), testEvent("", "quantum computing"))
	time.Sleep(70 * time.Millisecond)
	outcome := logger.LogSearch(context.Background(), testEvent("", "quantum computing"))

	assert.Equal(t, OutcomeSent, outcome)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

// приёмник падает один раз, потом отвечает: ровно 2 исходящих вызова и исход "sent"
func TestLogSearchRetryOnce(t *testing.T) {
	var calls int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := newTestLogger(server.URL, 30*time.Second)

	outcome := logger.LogSearch(context.Background(), testEvent("42", "graph theory"))

	assert.Equal(t, OutcomeSent, outcome)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

// приёмник падает всегда: ровно 2 вызова, исход "failed", никакой паники наружу
func TestLogSearchAlwaysFails(t *testing.T) {
	var calls int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := newTestLogger(server.URL, 30*time.Second)

	outcome := logger.LogSearch(context.Background(), testEvent("42", "topology"))

	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

// недоступный приёмник: никакая ошибка не доходит до вызывающего кода
func TestLogSearchSinkUnreachable(t *testing.T) {
	logger := newTestLogger("http://127.0.0.1:1", 30*time.Second)

	outcome := logger.LogSearch(context.Background(), testEvent("42", "algebra"))
	assert.Equal(t, OutcomeFailed, outcome)
}

// устаревшие записи дедупликации (старше 4х окон) вычищаются после очередной попытки
func TestPurgeStaleDedupeEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := newTestLogger(server.URL, 10*time.Millisecond)

	logger.LogSearch(context.Background(), testEvent("42", "old query"))

	// ждём дольше 4х окон и провоцируем чистку новым событием
	time.Sleep(50 * time.Millisecond)
	logger.LogSearch(context.Background(), testEvent("42", "new query"))

	logger.mu.Lock()
	_, staleExists := logger.lastSent["42:old query"]
	logger.mu.Unlock()

	assert.False(t, staleExists, "stale dedupe entry must be purged")
}

// fire-and-forget не блокирует вызывающий код и не роняет его паникой
func TestLogSearchDetached(t *testing.T) {
	var calls int64
	done := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusOK)
		close(done)
	}))
	defer server.Close()

	logger := newTestLogger(server.URL, 30*time.Second)

	logger.LogSearchDetached(testEvent("42", "detached"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("detached delivery did not happen")
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}
