package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"paper_catalog/configs"
	"paper_catalog/internal/domain"
	"paper_catalog/internal/jwt_service"
)

// фейковое хранилище пользователей
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) AddUser(_ context.Context, email, hashedPass string) (int64, error) {
	if _, ok := f.byEmail[email]; ok {
		return 0, domain.ErrUserAlreadyExists
	}
	user := &domain.User{ID: f.nextID, Email: email, PasswordHash: hashedPass, Role: "user"}
	f.nextID++
	f.byEmail[email] = user
	f.byID[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindUserByID(_ context.Context, id int64) (*domain.User, error) {
	return f.byID[id], nil
}

// фейковое хранилище refresh токенов
type fakeTokenRepo struct {
	hashes map[int64]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{hashes: make(map[int64]string)}
}

func (f *fakeTokenRepo) SaveRefreshToken(_ context.Context, userID int64, tokenHash string, _ time.Duration) error {
	f.hashes[userID] = tokenHash
	return nil
}

func (f *fakeTokenRepo) GetRefreshToken(_ context.Context, userID int64) (string, error) {
	return f.hashes[userID], nil
}

func (f *fakeTokenRepo) DeleteRefreshToken(_ context.Context, userID int64) error {
	delete(f.hashes, userID)
	return nil
}

func (f *fakeTokenRepo) Close() error { return nil }

func newTestAuthService() (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	jwtCfg := &configs.JWTConfig{
		SecretAccKey:    "test-access-secret-test-access-secret!!!",
		SecretRefKey:    "test-refresh-secret-test-refresh-secret!",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
	}
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return NewAuthService(users, tokens, jwt_service.NewJWTService(jwtCfg)), users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, tokens := newTestAuthService()
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)

	// пароль в базе хеширован, не хранится открытым текстом
	stored := users.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	pair, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// хеш refresh токена осел в хранилище
	assert.Equal(t, hashToken(pair.RefreshToken), tokens.hashes[userID])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@example.com", "password-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@example.com", "password-two")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

// неизвестный email и неверный пароль неразличимы для клиента
func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol@example.com", "real-password")
	require.NoError(t, err)

	_, errNoUser := svc.Login(ctx, "nobody@example.com", "whatever")
	_, errBadPass := svc.Login(ctx, "carol@example.com", "wrong-password")

	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, domain.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "dave@example.com", "some-password")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "dave@example.com", "some-password")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	// старый refresh токен после ротации отклоняется
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Refresh(context.Background(), "not-a-jwt-at-all")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "erin@example.com", "some-password")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "erin@example.com", "some-password")
	require.NoError(t, err)

	// access токен не годится как refresh (проверка типа в клэймах)
	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
