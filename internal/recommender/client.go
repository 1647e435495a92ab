// клиент внешнего рекомендательного сервиса
package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"paper_catalog/configs"
)

// структура ответа рекомендательного сервиса
type recommendationResponse struct {
	Recommendations []struct {
		PaperID int64 `json:"paper_id"`
	} `json:"recommendations"`
}

// структура клиента рекомендаций
// персонализация - best-effort: при ЛЮБОЙ ошибке (сеть, таймаут, не-2xx статус, битый JSON)
// возвращается пустой список, вызывающий код откатывается на стандартную ленту
type RecommendationClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// конструктор для клиента рекомендаций
func NewRecommendationClient(cfg *configs.RecommenderConfig) *RecommendationClient {
	return &RecommendationClient{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// метод получения ранжированного списка ID статей для пользователя
// порядок в ответе - авторитетный рейтинг провайдера (лучшие - первыми)
func (r *RecommendationClient) FetchRecommendations(ctx context.Context, userID string, topN int) []int64 {
	apiURL, err := r.buildURL(userID, topN)
	if err != nil {
		log.Printf("recommender: build URL failed: %v", err)
		return []int64{}
	}

	// жёсткий таймаут исходящего вызова через отменяемый контекст
	reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, apiURL, nil)
	if err != nil {
		log.Printf("recommender: create request failed: %v", err)
		return []int64{}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Printf("recommender: request failed: %v", err)
		return []int64{}
	}
	defer resp.Body.Close()

	// если сервис вернул ошибку - считаем, что рекомендаций нет
	if resp.StatusCode != http.StatusOK {
		log.Printf("recommender: service returned status %d", resp.StatusCode)
		return []int64{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("recommender: read response failed: %v", err)
		return []int64{}
	}

	// анмаршалим успешное тело ответа в нужную структуру
	var parsed recommendationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("recommender: parse response failed: %v", err)
		return []int64{}
	}

	ids := make([]int64, 0, len(parsed.Recommendations))
	for _, rec := range parsed.Recommendations {
		ids = append(ids, rec.PaperID)
	}

	return ids
}

// buildURL строит URL для запроса рекомендаций
func (r *RecommendationClient) buildURL(userID string, topN int) (string, error) {
	u, err := url.Parse(r.baseURL + "/recommend")
	if err != nil {
		return "", fmt.Errorf("invalid recommender base URL: %w", err)
	}

	query := u.Query()
	query.Set("user_id", userID)
	query.Set("top_n", strconv.Itoa(topN))

	u.RawQuery = query.Encode()
	return u.String(), nil
}
