package service

import (
	"context"
	"testing"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/store"
	"github.com/keepsake-dev/keepsake/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type mockProfileRepository struct {
	upsertFn func(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error)
	getFn    func(ctx context.Context, userID string) (models.Profile, error)
}

func (m *mockProfileRepository) UpsertProfile(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, upsert)
	}
	return models.Profile{}, nil
}

func (m *mockProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (models.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return models.Profile{}, nil
}

type mockApproverRepository struct {
	addFn    func(ctx context.Context, approver models.Approver) (models.Approver, error)
	listFn   func(ctx context.Context, userID string) ([]models.Approver, error)
	updateFn func(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error)
	deleteFn func(ctx context.Context, approverID int64, userID string) error
	countFn  func(ctx context.Context, userID string) (int64, error)
}

func (m *mockApproverRepository) AddApprover(ctx context.Context, approver models.Approver) (models.Approver, error) {
	if m.addFn != nil {
		return m.addFn(ctx, approver)
	}
	return models.Approver{}, nil
}

func (m *mockApproverRepository) GetApproversByUserID(ctx context.Context, userID string) ([]models.Approver, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockApproverRepository) UpdateApprover(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, approverID, userID, update)
	}
	return models.Approver{}, nil
}

func (m *mockApproverRepository) DeleteApprover(ctx context.Context, approverID int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, approverID, userID)
	}
	return nil
}

func (m *mockApproverRepository) CountApprovers(ctx context.Context, userID string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return 0, nil
}

type mockRecipientRepository struct {
	addFn    func(ctx context.Context, recipient models.Recipient) (models.Recipient, error)
	listFn   func(ctx context.Context, userID string) ([]models.Recipient, error)
	updateFn func(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error)
	deleteFn func(ctx context.Context, recipientID int64, userID string) error
}

func (m *mockRecipientRepository) AddRecipient(ctx context.Context, recipient models.Recipient) (models.Recipient, error) {
	if m.addFn != nil {
		return m.addFn(ctx, recipient)
	}
	return models.Recipient{}, nil
}

func (m *mockRecipientRepository) GetRecipientsByUserID(ctx context.Context, userID string) ([]models.Recipient, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipientRepository) UpdateRecipient(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, recipientID, userID, update)
	}
	return models.Recipient{}, nil
}

func (m *mockRecipientRepository) DeleteRecipient(ctx context.Context, recipientID int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, recipientID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

type accountMocks struct {
	users      *mockUserRepository
	profiles   *mockProfileRepository
	approvers  *mockApproverRepository
	recipients *mockRecipientRepository
}

func newTestAccountService(mocks accountMocks) AccountService {
	if mocks.users == nil {
		mocks.users = &mockUserRepository{}
	}
	if mocks.profiles == nil {
		mocks.profiles = &mockProfileRepository{}
	}
	if mocks.approvers == nil {
		mocks.approvers = &mockApproverRepository{}
	}
	if mocks.recipients == nil {
		mocks.recipients = &mockRecipientRepository{}
	}

	return NewAccountService(&store.Repositories{
		UserRepository:      mocks.users,
		ProfileRepository:   mocks.profiles,
		ApproverRepository:  mocks.approvers,
		RecipientRepository: mocks.recipients,
	}, logger.Nop())
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// ─────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────

func TestAccountService_GetUser_EmptyID(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.GetUser(context.Background(), "")

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAccountService_UpdateUser_EmptyName(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.UpdateUser(context.Background(), "google-123", models.UserUpdate{Name: strPtr("")})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAccountService_UpdateUser_Delegates(t *testing.T) {
	users := &mockUserRepository{
		updateFn: func(_ context.Context, userID string, update models.UserUpdate) (models.User, error) {
			assert.Equal(t, "google-123", userID)
			require.NotNil(t, update.Name)
			return models.User{ID: userID, Name: *update.Name}, nil
		},
	}
	svc := newTestAccountService(accountMocks{users: users})

	user, err := svc.UpdateUser(context.Background(), "google-123", models.UserUpdate{Name: strPtr("Johnny")})

	require.NoError(t, err)
	assert.Equal(t, "Johnny", user.Name)
}

// ─────────────────────────────────────────────
// Complete profile
// ─────────────────────────────────────────────

func TestAccountService_GetCompleteProfile_NoExtendedProfile(t *testing.T) {
	users := &mockUserRepository{
		getFn: func(_ context.Context, userID string) (models.User, error) {
			return models.User{ID: userID, Name: "John"}, nil
		},
	}
	profiles := &mockProfileRepository{
		getFn: func(_ context.Context, _ string) (models.Profile, error) {
			return models.Profile{}, store.ErrProfileNotFound
		},
	}
	approvers := &mockApproverRepository{
		listFn: func(_ context.Context, _ string) ([]models.Approver, error) {
			return []models.Approver{{ID: 1, Name: "Jane"}}, nil
		},
	}
	svc := newTestAccountService(accountMocks{users: users, profiles: profiles, approvers: approvers})

	complete, err := svc.GetCompleteProfile(context.Background(), "google-123")

	require.NoError(t, err)
	assert.Equal(t, "John", complete.User.Name)
	assert.Nil(t, complete.Profile)
	require.Len(t, complete.Approvers, 1)
}

func TestAccountService_GetCompleteProfile_WithProfile(t *testing.T) {
	users := &mockUserRepository{
		getFn: func(_ context.Context, userID string) (models.User, error) {
			return models.User{ID: userID}, nil
		},
	}
	profiles := &mockProfileRepository{
		getFn: func(_ context.Context, userID string) (models.Profile, error) {
			return models.Profile{ID: 1, UserID: userID, Age: intPtr(30)}, nil
		},
	}
	svc := newTestAccountService(accountMocks{users: users, profiles: profiles})

	complete, err := svc.GetCompleteProfile(context.Background(), "google-123")

	require.NoError(t, err)
	require.NotNil(t, complete.Profile)
	assert.Equal(t, 30, *complete.Profile.Age)
}

// ─────────────────────────────────────────────
// Extended profile
// ─────────────────────────────────────────────

func TestAccountService_UpsertExtendedProfile_MissingContactNumber(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.UpsertExtendedProfile(context.Background(), "google-123", models.ProfileUpsert{
		Age: intPtr(30),
	})

	require.ErrorIs(t, err, ErrValidationContactNumberRequired)
}

func TestAccountService_UpsertExtendedProfile_AgeOutOfRange(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	tests := []struct {
		name string
		age  int
	}{
		{name: "too young", age: 12},
		{name: "too old", age: 121},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertExtendedProfile(context.Background(), "google-123", models.ProfileUpsert{
				Age:            intPtr(tt.age),
				ContactNumber1: strPtr("+100"),
			})
			require.ErrorIs(t, err, ErrValidationInvalidAge)
		})
	}
}

func TestAccountService_UpsertExtendedProfile_Success(t *testing.T) {
	profiles := &mockProfileRepository{
		upsertFn: func(_ context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error) {
			return models.Profile{ID: 1, UserID: userID, Age: upsert.Age}, nil
		},
	}
	svc := newTestAccountService(accountMocks{profiles: profiles})

	profile, err := svc.UpsertExtendedProfile(context.Background(), "google-123", models.ProfileUpsert{
		Age:            intPtr(30),
		ContactNumber1: strPtr("+100"),
	})

	require.NoError(t, err)
	assert.Equal(t, 30, *profile.Age)
}

// ─────────────────────────────────────────────
// Approvers
// ─────────────────────────────────────────────

func TestAccountService_AddApprover_InvalidEmail(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.AddApprover(context.Background(), models.Approver{
		UserID: "google-123",
		Name:   "Jane",
		Email:  "not-an-email",
	})

	require.ErrorIs(t, err, ErrValidationWrongEmailFormat)
}

func TestAccountService_AddApprover_MissingName(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.AddApprover(context.Background(), models.Approver{
		UserID: "google-123",
		Email:  "jane@example.com",
	})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAccountService_DeleteApprover_MinimumPassesThrough(t *testing.T) {
	approvers := &mockApproverRepository{
		deleteFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrMinimumApprovers
		},
	}
	svc := newTestAccountService(accountMocks{approvers: approvers})

	err := svc.DeleteApprover(context.Background(), 2, "google-123")

	require.ErrorIs(t, err, store.ErrMinimumApprovers)
}

func TestAccountService_UpdateApprover_InvalidEmail(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.UpdateApprover(context.Background(), 2, "google-123", models.ApproverUpdate{
		Email: strPtr("broken"),
	})

	require.ErrorIs(t, err, ErrValidationWrongEmailFormat)
}

func TestAccountService_ValidateMinimumApprovers(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		want  bool
	}{
		{name: "none", count: 0, want: false},
		{name: "one", count: 1, want: false},
		{name: "exactly two", count: 2, want: true},
		{name: "many", count: 5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approvers := &mockApproverRepository{
				countFn: func(_ context.Context, _ string) (int64, error) {
					return tt.count, nil
				},
			}
			svc := newTestAccountService(accountMocks{approvers: approvers})

			ok, err := svc.ValidateMinimumApprovers(context.Background(), "google-123")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

// ─────────────────────────────────────────────
// Recipients
// ─────────────────────────────────────────────

func TestAccountService_AddRecipient_Success(t *testing.T) {
	recipients := &mockRecipientRepository{
		addFn: func(_ context.Context, recipient models.Recipient) (models.Recipient, error) {
			recipient.ID = 5
			return recipient, nil
		},
	}
	svc := newTestAccountService(accountMocks{recipients: recipients})

	saved, err := svc.AddRecipient(context.Background(), models.Recipient{
		UserID: "google-123",
		Name:   "Kid",
		Email:  "kid@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
}

func TestAccountService_UpdateRecipient_InvalidEmail(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	_, err := svc.UpdateRecipient(context.Background(), 5, "google-123", models.RecipientUpdate{
		Email: strPtr("broken"),
	})

	require.ErrorIs(t, err, ErrValidationWrongEmailFormat)
}

func TestAccountService_DeleteRecipient_ZeroID(t *testing.T) {
	svc := newTestAccountService(accountMocks{})

	err := svc.DeleteRecipient(context.Background(), 0, "google-123")

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}
