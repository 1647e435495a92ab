// репозиторий отзывов на статьи
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"paper_catalog/internal/catalog_interfaces"
	"paper_catalog/internal/domain"
)

type ReviewRepository struct {
	pool catalog_interfaces.Pool
}

// конструктор для репозитория отзывов
func NewReviewRepository(pool catalog_interfaces.Pool) catalog_interfaces.ReviewRepoInterface {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) ListByPaper(ctx context.Context, paperID int64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT id, paper_id, user_id, rating, comment, created_at, updated_at
        FROM reviews
        WHERE paper_id = $1
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.PaperID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review rows iteration failed: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (int64, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	const query = `
        INSERT INTO reviews (paper_id, user_id, rating, comment, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        RETURNING id
    `

	var reviewID int64
	err := r.pool.QueryRow(ctx, query, review.PaperID, review.UserID, review.Rating, review.Comment, time.Now()).Scan(&reviewID)
	if err != nil {
		return -1, fmt.Errorf("failed to insert review: %w", err)
	}

	return reviewID, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT id, paper_id, user_id, rating, comment, created_at, updated_at
        FROM reviews
        WHERE id = $1
        LIMIT 1
    `

	var review domain.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.PaperID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to query review by id: %w", err)
	}

	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id int64, rating int, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	const query = `
        UPDATE reviews
        SET rating = $1, comment = $2, updated_at = $3
        WHERE id = $4
    `

	affected, err := r.pool.Exec(ctx, query, rating, comment, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}
