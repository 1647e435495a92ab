package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper_catalog/internal/catalog_server/service"
	"paper_catalog/internal/domain"
)

// фейковый сервис ленты для тестов хэндлеров
type fakeFeedService struct {
	lastParams service.FeedParams
	page       domain.FeedPage
	err        error
}

func (f *fakeFeedService) ListFeed(_ context.Context, params service.FeedParams) (domain.FeedPage, error) {
	f.lastParams = params
	return f.page, f.err
}

func (f *fakeFeedService) GetPaperDetail(_ context.Context, id int64) (*domain.Paper, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Paper{ID: id}, nil
}

func (f *fakeFeedService) RecordDownload(_ context.Context, _, _ int64) error {
	return f.err
}

func newPapersRouter(svc service.FeedServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPapersHandler(svc)
	router.GET("/api/papers", handler.ListPapersHandler)
	router.GET("/api/papers/search", handler.SearchPapersHandler)
	router.GET("/api/papers/:id", handler.GetPaperHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListPapersHandlerDefaultsAndEnvelope(t *testing.T) {
	svc := &fakeFeedService{page: domain.FeedPage{
		Papers:           []domain.Paper{{ID: 1, Title: "Attention"}},
		Page:             1,
		Limit:            20,
		Total:            1,
		TotalPages:       1,
		IsRecommendation: true,
	}}
	router := newPapersRouter(svc)

	w, body := doRequest(t, router, "/api/papers")
	assert.Equal(t, http.StatusOK, w.Code)

	// отсутствующие параметры получили дефолты до вызова сервиса
	assert.Equal(t, 1, svc.lastParams.Page)
	assert.Equal(t, 20, svc.lastParams.Limit)

	// единый конверт ответа
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["isRecommendation"])
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["total"])
}

func TestListPapersHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "negative page", path: "/api/papers?page=-1"},
		{name: "zero limit", path: "/api/papers?page=1&limit=-5"},
		{name: "limit above cap", path: "/api/papers?limit=101"},
		{name: "non-numeric page", path: "/api/papers?page=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newPapersRouter(&fakeFeedService{})

			w, body := doRequest(t, router, tt.path)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestSearchPapersHandlerRequiresQuery(t *testing.T) {
	router := newPapersRouter(&fakeFeedService{})

	w, _ := doRequest(t, router, "/api/papers/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, router, "/api/papers/search?q=%20%20")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchPapersHandlerPassesQuery(t *testing.T) {
	svc := &fakeFeedService{page: domain.FeedPage{Papers: []domain.Paper{}}}
	router := newPapersRouter(svc)

	w, _ := doRequest(t, router, "/api/papers/search?q=transformers&fieldId=3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "transformers", svc.lastParams.Search)
	assert.Equal(t, int64(3), svc.lastParams.FieldID)
}

func TestGetPaperHandlerErrors(t *testing.T) {
	router := newPapersRouter(&fakeFeedService{err: domain.ErrPaperNotFound})

	w, body := doRequest(t, router, "/api/papers/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])

	w, _ = doRequest(t, router, "/api/papers/not-a-number")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPapersHandlerStoreError(t *testing.T) {
	router := newPapersRouter(&fakeFeedService{err: assert.AnError})

	w, body := doRequest(t, router, "/api/papers")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
}
