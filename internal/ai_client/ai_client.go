// тонкий клиент-прокси к внешнему AI/RAG сервису
package ai_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"paper_catalog/configs"
)

type AIClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// конструктор для AI клиента
func NewAIClient(cfg *configs.AIConfig) *AIClient {
	return &AIClient{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// метод для передачи вопроса пользователя AI сервису
// тело успешного ответа отдаётся как есть (прокси не интерпретирует ответ модели)
func (a *AIClient) Ask(ctx context.Context, question string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, a.baseURL+"/ask", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read AI response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI service returned status %d", resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
