// описание доменных моделей каталога научных статей
package domain

import (
	"errors"
	"time"
)

// общие ошибки доменного уровня
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPaperNotFound      = errors.New("paper not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrNotReviewOwner     = errors.New("review belongs to another user")
)

// структура пользователя каталога
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string // "user" или "admin"
	CreatedAt    time.Time
}

// структура научной статьи (универсальное представление для всех слоёв)
type Paper struct {
	ID            int64
	Title         string
	Abstract      string
	FieldID       int64
	FieldName     string
	Authors       []string
	PublishedAt   time.Time
	DownloadCount int64
	ReviewCount   int64
	AvgRating     float64
	CreatedAt     time.Time
}

// структура автора статьи
type Author struct {
	ID          int64
	Name        string
	Affiliation string
	PaperCount  int64
}

// структура научной области
type Field struct {
	ID         int64
	Name       string
	PaperCount int64
}

// структура отзыва на статью
type Review struct {
	ID        int64
	PaperID   int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// параметры фильтрации листинга статей
// пустые значения означают отсутствие фильтра
type PaperFilter struct {
	FieldID int64  // фильтр по научной области (0 - без фильтра)
	Search  string // свободный текст поиска (пустая строка - без поиска)
}

// страница ленты статей
// Total для персональной ленты - длина ранжированного списка,
// для стандартной - размер отфильтрованного корпуса (значения не сравнимы между режимами)
type FeedPage struct {
	Papers           []Paper
	Page             int
	Limit            int
	Total            int64
	TotalPages       int
	IsRecommendation bool
}

// структура поискового события для аналитики
type SearchEvent struct {
	UserID    string    // ID пользователя или "anon"
	Query     string    // строка поиска
	UserAgent string    // User-Agent клиента
	ClientIP  string    // IP клиента
	Timestamp time.Time // время события
}

// пара JWT токенов
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// сводная статистика каталога
type CatalogStats struct {
	TotalPapers    int64
	TotalUsers     int64
	TotalDownloads int64
	TotalReviews   int64
	TopDownloaded  []Paper
}
