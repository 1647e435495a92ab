package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper_catalog/internal/domain"
	"paper_catalog/internal/inmemory_cache"
)

// --- фейковые зависимости сервиса ленты ---

// фейковое хранилище статей
type fakePaperRepo struct {
	papers map[int64]domain.Paper // корпус для GetPapersByIDs / GetPaperByID
	listed []domain.Paper         // что вернёт ListPapers
	total  int64                  // полное количество для ListPapers

	listCalls  int
	byIDsCalls int
	lastIDs    []int64
	failAll    bool
}

func (f *fakePaperRepo) ListPapers(_ context.Context, _ domain.PaperFilter, offset, limit int) ([]domain.Paper, int64, error) {
	f.listCalls++
	if f.failAll {
		return nil, 0, errors.New("db down")
	}
	return f.listed, f.total, nil
}

func (f *fakePaperRepo) GetPapersByIDs(_ context.Context, ids []int64) ([]domain.Paper, error) {
	f.byIDsCalls++
	f.lastIDs = append([]int64(nil), ids...)
	if f.failAll {
		return nil, errors.New("db down")
	}
	// возвращаем найденные записи в обратном порядке, имитируя базу без ORDER BY
	result := make([]domain.Paper, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if paper, ok := f.papers[ids[i]]; ok {
			result = append(result, paper)
		}
	}
	return result, nil
}

func (f *fakePaperRepo) GetPaperByID(_ context.Context, id int64) (*domain.Paper, error) {
	if f.failAll {
		return nil, errors.New("db down")
	}
	if paper, ok := f.papers[id]; ok {
		return &paper, nil
	}
	return nil, domain.ErrPaperNotFound
}

func (f *fakePaperRepo) RecordDownload(_ context.Context, _, _ int64) error {
	if f.failAll {
		return errors.New("db down")
	}
	return nil
}

// фейковый провайдер рекомендаций
type fakeRecommender struct {
	ids      []int64
	calls    int
	lastUser string
	lastTopN int
}

func (f *fakeRecommender) FetchRecommendations(_ context.Context, userID string, topN int) []int64 {
	f.calls++
	f.lastUser = userID
	f.lastTopN = topN
	return f.ids
}

// фейковый приёмник поисковых событий
type fakeAnalytics struct {
	events []domain.SearchEvent
}

func (f *fakeAnalytics) LogSearch(_ context.Context, event domain.SearchEvent) string {
	f.events = append(f.events, event)
	return "sent"
}

func (f *fakeAnalytics) LogSearchDetached(event domain.SearchEvent) {
	f.events = append(f.events, event)
}

// вспомогательная функция генерации корпуса статей
func makePapers(ids ...int64) map[int64]domain.Paper {
	papers := make(map[int64]domain.Paper, len(ids))
	for _, id := range ids {
		papers[id] = domain.Paper{
			ID:          id,
			Title:       fmt.Sprintf("Paper %d", id),
			PublishedAt: time.Date(2024, 1, int(id%28)+1, 0, 0, 0, 0, time.UTC),
		}
	}
	return papers
}

func newTestFeedService(repo *fakePaperRepo, rec *fakeRecommender, sink *fakeAnalytics) *FeedService {
	cache, _ := inmemory_cache.NewBoundedTTLCache(60*time.Second, 200)
	return NewFeedService(repo, cache, rec, sink, 50)
}

// --- тесты композиции ленты ---

// проверяем сквозной персональный сценарий: первая страница, часть ранжированного списка
func TestListFeedPersonalizedFirstPage(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers(1, 2, 5, 8)}
	rec := &fakeRecommender{ids: []int64{5, 8, 2, 1}}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	page, err := svc.ListFeed(context.Background(), FeedParams{Page: 1, Limit: 2, UserID: "42"})
	require.NoError(t, err)

	assert.True(t, page.IsRecommendation)
	require.Len(t, page.Papers, 2)
	assert.Equal(t, int64(5), page.Papers[0].ID)
	assert.Equal(t, int64(8), page.Papers[1].ID)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	// личность и размер выборки дошли до провайдера
	assert.Equal(t, "42", rec.lastUser)
	assert.Equal(t, 50, rec.lastTopN)
	// в базу ушёл только срез текущей страницы
	assert.Equal(t, []int64{5, 8}, repo.lastIDs)
	// стандартный листинг не вызывался
	assert.Equal(t, 0, repo.listCalls)
}

// проверяем нарезку ранжированного списка по страницам в памяти
func TestListFeedPersonalizedPagination(t *testing.T) {
	ids := make([]int64, 45)
	corpus := make([]int64, 45)
	for i := range ids {
		ids[i] = int64(i + 1)
		corpus[i] = int64(i + 1)
	}

	tests := []struct {
		name      string
		page      int
		wantLen   int
		wantFirst int64
	}{
		{name: "full middle page", page: 2, wantLen: 20, wantFirst: 21},
		{name: "partial last page", page: 3, wantLen: 5, wantFirst: 41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePaperRepo{papers: makePapers(corpus...)}
			rec := &fakeRecommender{ids: ids}
			svc := newTestFeedService(repo, rec, &fakeAnalytics{})

			page, err := svc.ListFeed(context.Background(), FeedParams{Page: tt.page, Limit: 20, UserID: "7"})
			require.NoError(t, err)

			assert.True(t, page.IsRecommendation)
			require.Len(t, page.Papers, tt.wantLen)
			assert.Equal(t, tt.wantFirst, page.Papers[0].ID)
			assert.Equal(t, int64(45), page.Total)
			assert.Equal(t, 3, page.TotalPages)
		})
	}
}

// страница за концом персональной ленты - пустая страница, НЕ откат на стандартную
func TestListFeedPersonalizedPastEnd(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers(1, 2, 3)}
	rec := &fakeRecommender{ids: []int64{1, 2, 3}}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	page, err := svc.ListFeed(context.Background(), FeedParams{Page: 4, Limit: 20, UserID: "7"})
	require.NoError(t, err)

	assert.True(t, page.IsRecommendation)
	assert.Empty(t, page.Papers)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 0, repo.listCalls)
	assert.Equal(t, 0, repo.byIDsCalls)
}

// пустой ответ рекомендательного сервиса - стандартная лента без ошибки
func TestListFeedFallbackOnEmptyRecommendations(t *testing.T) {
	repo := &fakePaperRepo{
		papers: makePapers(10, 11),
		listed: []domain.Paper{{ID: 11}, {ID: 10}},
		total:  2,
	}
	rec := &fakeRecommender{ids: nil}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	page, err := svc.ListFeed(context.Background(), FeedParams{Page: 1, Limit: 20, UserID: "7"})
	require.NoError(t, err)

	assert.False(t, page.IsRecommendation)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, int64(2), page.Total)
}

// поиск и фильтр по области принудительно включают стандартный режим,
// рекомендательный сервис даже не вызывается
func TestListFeedSearchAndFilterForceStandard(t *testing.T) {
	tests := []struct {
		name   string
		params FeedParams
	}{
		{name: "search text", params: FeedParams{Page: 1, Limit: 20, Search: "transformers", UserID: "7"}},
		{name: "field filter", params: FeedParams{Page: 1, Limit: 20, FieldID: 3, UserID: "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePaperRepo{listed: []domain.Paper{{ID: 1}}, total: 1}
			rec := &fakeRecommender{ids: []int64{1, 2, 3}}
			svc := newTestFeedService(repo, rec, &fakeAnalytics{})

			page, err := svc.ListFeed(context.Background(), tt.params)
			require.NoError(t, err)

			assert.False(t, page.IsRecommendation)
			assert.Equal(t, 0, rec.calls)
			assert.Equal(t, 1, repo.listCalls)
		})
	}
}

// пересортировка: база вернула записи в произвольном порядке,
// лента обязана следовать порядку ранжированного списка
func TestListFeedReordersToRankedOrder(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers(3, 7, 9)}
	rec := &fakeRecommender{ids: []int64{3, 9, 7}}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	page, err := svc.ListFeed(context.Background(), FeedParams{Page: 1, Limit: 20, UserID: "7"})
	require.NoError(t, err)

	require.Len(t, page.Papers, 3)
	assert.Equal(t, int64(3), page.Papers[0].ID)
	assert.Equal(t, int64(9), page.Papers[1].ID)
	assert.Equal(t, int64(7), page.Papers[2].ID)
}

// рекомендованный ID без записи в базе молча выпадает из страницы
func TestListFeedDropsUnresolvedIDs(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers(3, 7)} // статьи 9 нет
	rec := &fakeRecommender{ids: []int64{3, 9, 7}}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	page, err := svc.ListFeed(context.Background(), FeedParams{Page: 1, Limit: 20, UserID: "7"})
	require.NoError(t, err)

	require.Len(t, page.Papers, 2)
	assert.Equal(t, int64(3), page.Papers[0].ID)
	assert.Equal(t, int64(7), page.Papers[1].ID)
	// Total считается по ранжированному списку, не по найденным записям
	assert.Equal(t, int64(3), page.Total)
}

// ошибка хранилища статей - жёсткий отказ, он НЕ маскируется
func TestListFeedStoreErrorPropagates(t *testing.T) {
	repo := &fakePaperRepo{failAll: true}
	rec := &fakeRecommender{ids: []int64{1, 2}}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	_, err := svc.ListFeed(context.Background(), FeedParams{Page: 1, Limit: 20, UserID: "7"})
	require.Error(t, err)
}

// повторный идентичный запрос обслуживается из кэша без похода в зависимости
func TestListFeedServedFromCache(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers(1, 2)}
	rec := &fakeRecommender{ids: []int64{1, 2}}
	svc := newTestFeedService(repo, rec, &fakeAnalytics{})

	params := FeedParams{Page: 1, Limit: 20, UserID: "7"}

	first, err := svc.ListFeed(context.Background(), params)
	require.NoError(t, err)

	second, err := svc.ListFeed(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 1, repo.byIDsCalls)
}

// кэш различает пользователей в персональном режиме и игнорирует их в поисковом
func TestFeedCacheKeyIdentityScope(t *testing.T) {
	base := FeedParams{Page: 1, Limit: 20}

	// персональный режим: разные пользователи - разные ключи
	a := base
	a.UserID = "1"
	b := base
	b.UserID = "2"
	assert.NotEqual(t, feedCacheKey(a), feedCacheKey(b))

	// аноним и пустой ID дают один ключ
	anon := base
	assert.Equal(t, feedCacheKey(anon), feedCacheKey(FeedParams{Page: 1, Limit: 20}))

	// поисковый режим: личность не входит в ключ
	sa := base
	sa.Search = "gan"
	sa.UserID = "1"
	sb := base
	sb.Search = "gan"
	sb.UserID = "2"
	assert.Equal(t, feedCacheKey(sa), feedCacheKey(sb))
}

// поисковый текст уходит в аналитику, пустой - нет
func TestListFeedEmitsSearchEvent(t *testing.T) {
	repo := &fakePaperRepo{listed: []domain.Paper{}, total: 0}
	sink := &fakeAnalytics{}
	svc := newTestFeedService(repo, &fakeRecommender{}, sink)

	_, err := svc.ListFeed(context.Background(), FeedParams{
		Page: 1, Limit: 20,
		Search:    "diffusion models",
		UserID:    "9",
		UserAgent: "test-agent",
		ClientIP:  "10.0.0.1",
	})
	require.NoError(t, err)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "diffusion models", sink.events[0].Query)
	assert.Equal(t, "9", sink.events[0].UserID)
	assert.Equal(t, "test-agent", sink.events[0].UserAgent)

	_, err = svc.ListFeed(context.Background(), FeedParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, sink.events, 1)
}

// --- тесты деталей статьи и скачивания ---

func TestGetPaperDetailCachesAndInvalidates(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers(5)}
	svc := newTestFeedService(repo, &fakeRecommender{}, &fakeAnalytics{})

	paper, err := svc.GetPaperDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), paper.ID)

	// после скачивания детали перечитываются из базы
	require.NoError(t, svc.RecordDownload(context.Background(), 5, 1))

	_, ok := svc.cache.GetItem(paperDetailKey(5))
	assert.False(t, ok)
}

func TestGetPaperDetailNotFound(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers()}
	svc := newTestFeedService(repo, &fakeRecommender{}, &fakeAnalytics{})

	_, err := svc.GetPaperDetail(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrPaperNotFound)
}

func TestRecordDownloadUnknownPaper(t *testing.T) {
	repo := &fakePaperRepo{papers: makePapers()}
	svc := newTestFeedService(repo, &fakeRecommender{}, &fakeAnalytics{})

	err := svc.RecordDownload(context.Background(), 404, 1)
	assert.ErrorIs(t, err, domain.ErrPaperNotFound)
}
