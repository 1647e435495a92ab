// сервисный слой отзывов на статьи
package service

import (
	"context"
	"time"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

// описание интерфейса сервиса отзывов
type ReviewServiceInterface interface {
	ListByPaper(ctx context.Context, paperID int64) ([]domain.Review, error)
	Create(ctx context.Context, paperID, userID int64, rating int, comment string) (*domain.Review, error)
	Update(ctx context.Context, reviewID, userID int64, rating int, comment string) (*domain.Review, error)
}

// описание структуры сервиса отзывов
type ReviewService struct {
	reviewRepo catalog_interfaces.ReviewRepoInterface
	paperRepo  catalog_interfaces.PaperRepoInterface
	cache      catalog_interfaces.CacheInterface
}

// конструктор сервиса отзывов
func NewReviewService(
	reviewRepo catalog_interfaces.ReviewRepoInterface,
	paperRepo catalog_interfaces.PaperRepoInterface,
	cache catalog_interfaces.CacheInterface,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		paperRepo:  paperRepo,
		cache:      cache,
	}
}

// метод получения отзывов на статью
func (s *ReviewService) ListByPaper(ctx context.Context, paperID int64) ([]domain.Review, error) {
	// проверяем существование статьи, чтобы клиент получил 404 вместо пустого списка
	if _, err := s.paperRepo.GetPaperByID(ctx, paperID); err != nil {
		return nil, err
	}

	return s.reviewRepo.ListByPaper(ctx, paperID)
}

// метод создания отзыва
func (s *ReviewService) Create(ctx context.Context, paperID, userID int64, rating int, comment string) (*domain.Review, error) {
	if _, err := s.paperRepo.GetPaperByID(ctx, paperID); err != nil {
		return nil, err
	}

	review := domain.Review{
		PaperID: paperID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}

	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	// счётчик отзывов и средний рейтинг в деталях статьи устарели
	s.cache.DeleteItem(paperDetailKey(paperID))

	now := time.Now()
	review.ID = id
	review.CreatedAt = now
	review.UpdatedAt = now
	return &review, nil
}

// метод обновления отзыва; менять можно только свой отзыв
func (s *ReviewService) Update(ctx context.Context, reviewID, userID int64, rating int, comment string) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		return nil, domain.ErrNotReviewOwner
	}

	if err := s.reviewRepo.Update(ctx, reviewID, rating, comment); err != nil {
		return nil, err
	}

	s.cache.DeleteItem(paperDetailKey(review.PaperID))

	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = time.Now()
	return review, nil
}
