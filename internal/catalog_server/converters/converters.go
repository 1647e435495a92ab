// конвертация Domain -> DTO для ответов клиенту
package converters

import (
	"time"

	"paper_catalog/internal/catalog_server/dto"
	"paper_catalog/internal/domain"
)

// конвертация одной статьи
func PaperDomainToDTO(paper domain.Paper) dto.PaperResponse {
	authors := paper.Authors
	if authors == nil {
		authors = []string{}
	}

	return dto.PaperResponse{
		ID:            paper.ID,
		Title:         paper.Title,
		Abstract:      paper.Abstract,
		FieldID:       paper.FieldID,
		FieldName:     paper.FieldName,
		Authors:       authors,
		PublishedAt:   paper.PublishedAt.Format(time.RFC3339),
		DownloadCount: paper.DownloadCount,
		ReviewCount:   paper.ReviewCount,
		AvgRating:     paper.AvgRating,
	}
}

// конвертация списка статей
func PapersDomainToDTO(papers []domain.Paper) []dto.PaperResponse {
	result := make([]dto.PaperResponse, len(papers))
	for i, paper := range papers {
		result[i] = PaperDomainToDTO(paper)
	}
	return result
}

// конвертация страницы ленты в конверт ответа
func FeedPageDomainToDTO(page domain.FeedPage) dto.FeedResponse {
	return dto.FeedResponse{
		Papers: PapersDomainToDTO(page.Papers),
		Pagination: dto.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.TotalPages,
		},
		IsRecommendation: page.IsRecommendation,
	}
}

// конвертация отзыва
func ReviewDomainToDTO(review domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		PaperID:   review.PaperID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
		UpdatedAt: review.UpdatedAt.Format(time.RFC3339),
	}
}

// конвертация списка отзывов
func ReviewsDomainToDTO(reviews []domain.Review) []dto.ReviewResponse {
	result := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		result[i] = ReviewDomainToDTO(review)
	}
	return result
}

// конвертация автора
func AuthorDomainToDTO(author domain.Author) dto.AuthorResponse {
	return dto.AuthorResponse{
		ID:          author.ID,
		Name:        author.Name,
		Affiliation: author.Affiliation,
		PaperCount:  author.PaperCount,
	}
}

// конвертация списка авторов
func AuthorsDomainToDTO(authors []domain.Author) []dto.AuthorResponse {
	result := make([]dto.AuthorResponse, len(authors))
	for i, author := range authors {
		result[i] = AuthorDomainToDTO(author)
	}
	return result
}

// конвертация научной области
func FieldDomainToDTO(field domain.Field) dto.FieldResponse {
	return dto.FieldResponse{
		ID:         field.ID,
		Name:       field.Name,
		PaperCount: field.PaperCount,
	}
}

// конвертация списка научных областей
func FieldsDomainToDTO(fields []domain.Field) []dto.FieldResponse {
	result := make([]dto.FieldResponse, len(fields))
	for i, field := range fields {
		result[i] = FieldDomainToDTO(field)
	}
	return result
}

// конвертация сводной статистики
func StatsDomainToDTO(stats domain.CatalogStats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalPapers:    stats.TotalPapers,
		TotalUsers:     stats.TotalUsers,
		TotalDownloads: stats.TotalDownloads,
		TotalReviews:   stats.TotalReviews,
		TopDownloaded:  PapersDomainToDTO(stats.TopDownloaded),
	}
}
