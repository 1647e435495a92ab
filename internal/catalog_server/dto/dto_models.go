// DTO структуры для запросов и ответов сервера каталога
package dto

import (
	"fmt"
	"strings"
)

// единый конверт ответа API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListPapersRequest - DTO для запроса листинга статей (query параметры)
type ListPapersRequest struct {
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	FieldID int64  `form:"fieldId"`
	Search  string `form:"search"`
}

// проводим валидацию и нормализацию входных данных листинга
// отсутствующие значения получают дефолты, выход за границы - ошибка клиента (4xx)
func (r *ListPapersRequest) ValidateAndNormalize() error {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 20
	}

	if r.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", r.Page)
	}
	if r.Limit < 1 || r.Limit > 100 {
		return fmt.Errorf("limit must be in range [1, 100], got %d", r.Limit)
	}

	r.Search = strings.TrimSpace(r.Search)

	return nil
}

// SearchPapersRequest - DTO для выделенного поискового эндпоинта (поисковый текст обязателен)
type SearchPapersRequest struct {
	Query   string `form:"q"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	FieldID int64  `form:"fieldId"`
}

func (r *SearchPapersRequest) ValidateAndNormalize() error {
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		return fmt.Errorf("search query 'q' is required")
	}

	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 20
	}

	if r.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", r.Page)
	}
	if r.Limit < 1 || r.Limit > 100 {
		return fmt.Errorf("limit must be in range [1, 100], got %d", r.Limit)
	}

	return nil
}

// ListAuthorsRequest - DTO для листинга авторов
type ListAuthorsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListAuthorsRequest) ValidateAndNormalize() error {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 20
	}

	if r.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", r.Page)
	}
	if r.Limit < 1 || r.Limit > 100 {
		return fmt.Errorf("limit must be in range [1, 100], got %d", r.Limit)
	}

	return nil
}

// RegisterRequest - DTO для регистрации пользователя
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// RegisterResponse - ответ при успешной регистрации
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// LoginRequest - DTO для входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse - ответ при успешном входе
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RefreshRequest - DTO для обновления пары токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateReviewRequest - DTO для создания отзыва
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// UpdateReviewRequest - DTO для обновления отзыва
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// AskAIRequest - DTO для вопроса к AI сервису
type AskAIRequest struct {
	Question string `json:"question" binding:"required,min=3,max=2000"`
}

// PaperResponse - DTO статьи для ответа клиенту
type PaperResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract"`
	FieldID       int64    `json:"field_id"`
	FieldName     string   `json:"field_name"`
	Authors       []string `json:"authors"`
	PublishedAt   string   `json:"published_at"`
	DownloadCount int64    `json:"download_count"`
	ReviewCount   int64    `json:"review_count"`
	AvgRating     float64  `json:"avg_rating"`
}

// PaginationResponse - DTO блока пагинации
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// FeedResponse - DTO данных листинга статей
type FeedResponse struct {
	Papers           []PaperResponse    `json:"papers"`
	Pagination       PaginationResponse `json:"pagination"`
	IsRecommendation bool               `json:"isRecommendation"`
}

// ReviewResponse - DTO отзыва
type ReviewResponse struct {
	ID        int64  `json:"id"`
	PaperID   int64  `json:"paper_id"`
	UserID    int64  `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthorResponse - DTO автора
type AuthorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	PaperCount  int64  `json:"paper_count"`
}

// FieldResponse - DTO научной области
type FieldResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PaperCount int64  `json:"paper_count"`
}

// StatsResponse - DTO сводной статистики
type StatsResponse struct {
	TotalPapers    int64           `json:"total_papers"`
	TotalUsers     int64           `json:"total_users"`
	TotalDownloads int64           `json:"total_downloads"`
	TotalReviews   int64           `json:"total_reviews"`
	TopDownloaded  []PaperResponse `json:"top_downloaded"`
}
