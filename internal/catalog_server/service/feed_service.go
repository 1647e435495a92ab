// сервис ленты статей: выбор режима, пагинация, слияние с рекомендациями, кэширование
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

// параметры одного запроса листинга (уже валидированные и нормализованные)
type FeedParams struct {
	Page    int
	Limit   int
	FieldID int64
	Search  string

	// данные личности и клиента для персонализации и логирования поиска
	UserID    string // "" = аноним
	UserAgent string
	ClientIP  string
}

// интерфейс сервиса ленты
type FeedServiceInterface interface {
	ListFeed(ctx context.Context, params FeedParams) (domain.FeedPage, error)
	GetPaperDetail(ctx context.Context, id int64) (*domain.Paper, error)
	RecordDownload(ctx context.Context, paperID, userID int64) error
}

// структура сервиса ленты
type FeedService struct {
	paperRepo   catalog_interfaces.PaperRepoInterface
	cache       catalog_interfaces.CacheInterface
	recommender catalog_interfaces.RecommendationProvider
	logger      catalog_interfaces.AnalyticsSink
	topN        int // сколько ранжированных ID запрашиваем у рекомендательного сервиса
}

// конструктор сервиса ленты
func NewFeedService(
	paperRepo catalog_interfaces.PaperRepoInterface,
	cache catalog_interfaces.CacheInterface,
	recommender catalog_interfaces.RecommendationProvider,
	logger catalog_interfaces.AnalyticsSink,
	topN int,
) *FeedService {
	return &FeedService{
		paperRepo:   paperRepo,
		cache:       cache,
		recommender: recommender,
		logger:      logger,
		topN:        topN,
	}
}

// метод составления страницы ленты
// порядок шагов внутри запроса фиксирован: режим -> ID -> записи -> пересортировка -> кэш
func (s *FeedService) ListFeed(ctx context.Context, params FeedParams) (domain.FeedPage, error) {
	// поисковый запрос уходит в аналитику отдельной горутиной, ответ её НЕ ждёт
	if params.Search != "" {
		s.logger.LogSearchDetached(domain.SearchEvent{
			UserID:    params.UserID,
			Query:     params.Search,
			UserAgent: params.UserAgent,
			ClientIP:  params.ClientIP,
		})
	}

	cacheKey := feedCacheKey(params)

	// проверяем кэш ответов
	if cached, ok := s.cache.GetItem(cacheKey); ok {
		if page, ok := cached.(domain.FeedPage); ok {
			return page, nil
		}
	}

	page, err := s.composeFeed(ctx, params)
	if err != nil {
		return domain.FeedPage{}, err
	}

	// записываем составленную страницу в кэш перед возвратом (last-writer-wins)
	s.cache.AddItem(cacheKey, page)

	return page, nil
}

// составление страницы: сначала попытка персональной ленты, при невозможности - стандартная
func (s *FeedService) composeFeed(ctx context.Context, params FeedParams) (domain.FeedPage, error) {
	// явный поиск или фильтр по области = всегда стандартный режим
	if params.Search != "" || params.FieldID != 0 {
		return s.composeStandard(ctx, params)
	}

	// персонализация best-effort: ошибки провайдера уже превращены в пустой список
	rankedIDs := s.recommender.FetchRecommendations(ctx, userOrAnon(params.UserID), s.topN)
	if len(rankedIDs) == 0 {
		return s.composeStandard(ctx, params)
	}

	page, demote, err := s.composePersonalized(ctx, params, rankedIDs)
	if err != nil {
		return domain.FeedPage{}, err
	}
	if demote {
		return s.composeStandard(ctx, params)
	}

	return page, nil
}

// стандартная лента: хронологический/отфильтрованный порядок, offset-пагинация в базе
func (s *FeedService) composeStandard(ctx context.Context, params FeedParams) (domain.FeedPage, error) {
	filter := domain.PaperFilter{
		FieldID: params.FieldID,
		Search:  params.Search,
	}

	offset := (params.Page - 1) * params.Limit
	papers, total, err := s.paperRepo.ListPapers(ctx, filter, offset, params.Limit)
	if err != nil {
		return domain.FeedPage{}, fmt.Errorf("failed to list papers: %w", err)
	}

	return domain.FeedPage{
		Papers:           papers,
		Page:             params.Page,
		Limit:            params.Limit,
		Total:            total,
		TotalPages:       totalPages(total, params.Limit),
		IsRecommendation: false,
	}, nil
}

// персональная лента: ранжированный список режется по страницам В ПАМЯТИ до похода в базу
// асимметрия политики намеренная и видимая клиентам:
//   - пустой срез на странице 1 = сигнал слишком слабый, откатываемся на стандартную ленту
//   - пустой срез на странице > 1 = конец персональной ленты, возвращаем пустую страницу,
//     чтобы пагинация не перескочила молча на другой порядок посреди просмотра
func (s *FeedService) composePersonalized(ctx context.Context, params FeedParams, rankedIDs []int64) (domain.FeedPage, bool, error) {
	total := int64(len(rankedIDs))

	start := (params.Page - 1) * params.Limit
	if start >= len(rankedIDs) {
		if params.Page == 1 {
			return domain.FeedPage{}, true, nil
		}

		return domain.FeedPage{
			Papers:           []domain.Paper{},
			Page:             params.Page,
			Limit:            params.Limit,
			Total:            total,
			TotalPages:       totalPages(total, params.Limit),
			IsRecommendation: true,
		}, false, nil
	}

	end := start + params.Limit
	if end > len(rankedIDs) {
		end = len(rankedIDs)
	}
	idSlice := rankedIDs[start:end]

	// пакетная выборка записей; порядок ответа базы не гарантирован
	papers, err := s.paperRepo.GetPapersByIDs(ctx, idSlice)
	if err != nil {
		return domain.FeedPage{}, false, fmt.Errorf("failed to fetch papers by ids: %w", err)
	}

	// пересортировка строго в порядок запрошенного среза;
	// ID без записи (например удалённая статья) молча выпадает
	ordered := reorderByIDs(idSlice, papers)

	return domain.FeedPage{
		Papers:           ordered,
		Page:             params.Page,
		Limit:            params.Limit,
		Total:            total,
		TotalPages:       totalPages(total, params.Limit),
		IsRecommendation: true,
	}, false, nil
}

// метод получения деталей статьи с кэшированием
func (s *FeedService) GetPaperDetail(ctx context.Context, id int64) (*domain.Paper, error) {
	cacheKey := paperDetailKey(id)

	if cached, ok := s.cache.GetItem(cacheKey); ok {
		if paper, ok := cached.(*domain.Paper); ok {
			return paper, nil
		}
	}

	paper, err := s.paperRepo.GetPaperByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.AddItem(cacheKey, paper)
	return paper, nil
}

// метод записи скачивания; инвалидирует закэшированные детали статьи
func (s *FeedService) RecordDownload(ctx context.Context, paperID, userID int64) error {
	// проверяем существование статьи (404 вместо ошибки внешнего ключа)
	if _, err := s.paperRepo.GetPaperByID(ctx, paperID); err != nil {
		return err
	}

	if err := s.paperRepo.RecordDownload(ctx, paperID, userID); err != nil {
		return err
	}

	s.cache.DeleteItem(paperDetailKey(paperID))
	return nil
}

// вспомогательная функция пересортировки записей в порядок запрошенных ID
func reorderByIDs(ids []int64, papers []domain.Paper) []domain.Paper {
	byID := make(map[int64]domain.Paper, len(papers))
	for _, paper := range papers {
		byID[paper.ID] = paper
	}

	ordered := make([]domain.Paper, 0, len(ids))
	for _, id := range ids {
		if paper, ok := byID[id]; ok {
			ordered = append(ordered, paper)
		}
	}

	return ordered
}

// ключ кэша листинга: канонический хэш всех параметров, влияющих на ответ
// личность пользователя входит в ключ только там, где возможна персонализация
func feedCacheKey(params FeedParams) string {
	user := ""
	if params.Search == "" && params.FieldID == 0 {
		user = userOrAnon(params.UserID)
	}

	keyData := struct {
		Page    int    `json:"page"`
		Limit   int    `json:"limit"`
		FieldID int64  `json:"field_id"`
		Search  string `json:"search"`
		User    string `json:"user"`
	}{
		Page:    params.Page,
		Limit:   params.Limit,
		FieldID: params.FieldID,
		Search:  params.Search,
		User:    user,
	}

	data, _ := json.Marshal(keyData)
	sum := sha256.Sum256(data)
	return "feed:" + hex.EncodeToString(sum[:])
}

// ключ кэша деталей статьи
func paperDetailKey(id int64) string {
	return "paper:" + strconv.FormatInt(id, 10)
}

// расчёт количества страниц
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// личность для внешних сервисов: пустой ID = "anon"
func userOrAnon(userID string) string {
	if userID == "" {
		return "anon"
	}
	return userID
}
