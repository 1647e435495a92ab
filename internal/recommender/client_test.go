package recommender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paper_catalog/configs"
)

func newTestClient(baseURL string, timeout time.Duration) *RecommendationClient {
	return NewRecommendationClient(&configs.RecommenderConfig{
		BaseURL: baseURL,
		Timeout: timeout,
		TopN:    50,
	})
}

// успешный ответ: порядок ID сохраняется как прислал провайдер
func TestFetchRecommendationsSuccess(t *testing.T) {
	var gotUserID, gotTopN string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.URL.Query().Get("user_id")
		gotTopN = r.URL.Query().Get("top_n")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[{"paper_id":5},{"paper_id":8},{"paper_id":2},{"paper_id":1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)

	ids := client.FetchRecommendations(context.Background(), "42", 50)

	assert.Equal(t, []int64{5, 8, 2, 1}, ids)
	assert.Equal(t, "42", gotUserID)
	assert.Equal(t, "50", gotTopN)
}

// любая ошибка провайдера деградирует в пустой список, без ошибки и без паники
func TestFetchRecommendationsFailOpen(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-2xx status",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"unparsable payload",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"recommendations": not-json`))
			},
		},
		{
			"empty body",
			func(w http.ResponseWriter, r *http.Request) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(server.URL, 5*time.Second)

			ids := client.FetchRecommendations(context.Background(), "42", 50)
			assert.Empty(t, ids)
		})
	}
}

// таймаут исходящего вызова тоже деградирует в пустой список
func TestFetchRecommendationsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"recommendations":[{"paper_id":1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50*time.Millisecond)

	start := time.Now()
	ids := client.FetchRecommendations(context.Background(), "42", 50)

	assert.Empty(t, ids)
	assert.Less(t, time.Since(start), 200*time.Millisecond, "call must be cut off by the timeout")
}

// недоступный сервис (соединение отклонено)
func TestFetchRecommendationsConnectionRefused(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", time.Second)

	ids := client.FetchRecommendations(context.Background(), "anon", 50)
	assert.Empty(t, ids)
}
