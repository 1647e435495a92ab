// репозиторий пользователей каталога
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

type UserRepository struct {
	pool catalog_interfaces.Pool
}

// конструктор для репозитория пользователей
func NewUserRepository(pool catalog_interfaces.Pool) catalog_interfaces.UserRepoInterface {
	return &UserRepository{pool: pool}
}

func (u *UserRepository) AddUser(ctx context.Context, email, hashedPass string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	const query = `
        INSERT INTO users (email, password_hash, role, created_at)
        VALUES ($1, $2, 'user', $3)
        ON CONFLICT (email) DO NOTHING
        RETURNING id
    `

	var userID int64
	err := u.pool.QueryRow(ctx, query, email, hashedPass, time.Now()).Scan(&userID)

	if errors.Is(err, pgx.ErrNoRows) {
		return -1, domain.ErrUserAlreadyExists
	}
	if err != nil {
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}

	return userID, nil
}

func (u *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT id, email, password_hash, role, created_at
        FROM users
        WHERE email = $1
        LIMIT 1
    `

	var user domain.User
	err := u.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // пользователь не найден - это не ошибка запроса
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

func (u *UserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT id, email, password_hash, role, created_at
        FROM users
        WHERE id = $1
        LIMIT 1
    `

	var user domain.User
	err := u.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &user, nil
}
