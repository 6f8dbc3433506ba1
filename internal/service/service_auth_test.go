package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keepsake-dev/keepsake/internal/config"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	upsertFn func(ctx context.Context, identity models.ExternalIdentity) (models.User, error)
	getFn    func(ctx context.Context, userID string) (models.User, error)
	getAllFn func(ctx context.Context) ([]models.User, error)
	updateFn func(ctx context.Context, userID string, update models.UserUpdate) (models.User, error)
	deleteFn func(ctx context.Context, userID string) error
}

func (m *mockUserRepository) UpsertOnLogin(ctx context.Context, identity models.ExternalIdentity) (models.User, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, identity)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, update)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestAuthService(repo *mockUserRepository) AuthService {
	return NewAuthService(repo, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "keepsake",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// ResolveIdentity
// ─────────────────────────────────────────────

func TestAuthService_ResolveIdentity_Success(t *testing.T) {
	repo := &mockUserRepository{
		upsertFn: func(_ context.Context, identity models.ExternalIdentity) (models.User, error) {
			assert.Equal(t, "google", identity.Provider)
			return models.User{ID: identity.ID, Email: identity.Email}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.ResolveIdentity(context.Background(), models.ExternalIdentity{
		ID:    "google-123",
		Email: "john@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "google-123", user.ID)
}

func TestAuthService_ResolveIdentity_MissingID(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ResolveIdentity(context.Background(), models.ExternalIdentity{Email: "john@example.com"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_ResolveIdentity_MissingEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ResolveIdentity(context.Background(), models.ExternalIdentity{ID: "google-123"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_ResolveIdentity_StorageError(t *testing.T) {
	repo := &mockUserRepository{
		upsertFn: func(_ context.Context, _ models.ExternalIdentity) (models.User, error) {
			return models.User{}, errStorage
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.ResolveIdentity(context.Background(), models.ExternalIdentity{
		ID:    "google-123",
		Email: "john@example.com",
	})

	require.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{ID: "google-123"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "google-123", parsed.UserID)
}

func TestAuthService_CreateToken_EmptyUserID(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.CreateToken(context.Background(), models.User{})

	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not.a.token")

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
