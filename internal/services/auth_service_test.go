package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/vehifin-api/internal/config"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByUsername func(ctx context.Context, username string) (*models.User, error)
	mockFindByID       func(ctx context.Context, id uint) (*models.User, error)
	mockCreate         func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.mockFindByUsername(ctx, username)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.mockCreate(ctx, user)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return nil
}

type mockRTRepo struct {
	repository.RefreshTokenRepository
	tokens            map[string]*models.RefreshToken
	mockDeleteExpired func(ctx context.Context, now time.Time) (int64, error)
}

func newMockRTRepo() *mockRTRepo {
	return &mockRTRepo{tokens: map[string]*models.RefreshToken{}}
}

func (m *mockRTRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rt, nil
}

func (m *mockRTRepo) Create(ctx context.Context, rt *models.RefreshToken) error {
	m.tokens[rt.Token] = rt
	return nil
}

func (m *mockRTRepo) Delete(ctx context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func (m *mockRTRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return m.mockDeleteExpired(ctx, now)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 24}
}

func adminUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	return &models.User{ID: 7, Username: "admin", EncryptedPassword: hash}
}

func TestAuthService_Login(t *testing.T) {
	user := adminUser(t)
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			if username == "admin" {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	tokens := newMockRTRepo()
	service := NewAuthService(users, tokens, testConfig())

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "admin", password: "admin123"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "admin123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "bearer", result.TokenType)
			assert.Equal(t, "admin", result.Username)
			assert.Equal(t, int64(24*3600), result.ExpiresIn)
			assert.Contains(t, tokens.tokens, result.RefreshToken)

			parsed, err := jwt.Parse(result.AccessToken, func(token *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			require.NoError(t, err)
			sub, err := parsed.Claims.GetSubject()
			require.NoError(t, err)
			assert.Equal(t, "admin", sub)
		})
	}
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, errors.New("connection reset")
		},
	}
	service := NewAuthService(users, newMockRTRepo(), testConfig())

	_, err := service.Login(context.Background(), "admin", "admin123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	user := adminUser(t)
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) { return user, nil },
		mockFindByID:       func(ctx context.Context, id uint) (*models.User, error) { return user, nil },
	}
	tokens := newMockRTRepo()
	service := NewAuthService(users, tokens, testConfig())

	login, err := service.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.NotContains(t, tokens.tokens, login.RefreshToken)

	_, err = service.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Refresh_Expired(t *testing.T) {
	tokens := newMockRTRepo()
	past := time.Now().Add(-time.Minute)
	tokens.tokens["old"] = &models.RefreshToken{UserID: 1, Token: "old", ExpiresAt: &past}
	service := NewAuthService(&mockUserRepo{}, tokens, testConfig())

	_, err := service.Refresh(context.Background(), "old")
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotContains(t, tokens.tokens, "old")
}

func TestAuthService_EnsureUser(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			if created != nil {
				return created, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		mockCreate: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	service := NewAuthService(users, newMockRTRepo(), testConfig())

	ok, err := service.EnsureUser(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, created)
	assert.True(t, VerifyPassword("admin123", created.EncryptedPassword))

	ok, err = service.EnsureUser(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_PurgeExpiredTokens(t *testing.T) {
	tokens := newMockRTRepo()
	var called bool
	tokens.mockDeleteExpired = func(ctx context.Context, now time.Time) (int64, error) {
		called = true
		return 3, nil
	}
	service := NewAuthService(&mockUserRepo{}, tokens, testConfig())

	require.NoError(t, service.PurgeExpiredTokens(context.Background()))
	assert.True(t, called)

	tokens.mockDeleteExpired = func(ctx context.Context, now time.Time) (int64, error) {
		return 0, errors.New("db down")
	}
	assert.Error(t, service.PurgeExpiredTokens(context.Background()))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("secret", hash))
	assert.False(t, VerifyPassword("Secret", hash))
}
