package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/service"
	"github.com/keepsake-dev/keepsake/internal/utils"
	"github.com/keepsake-dev/keepsake/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	resolveFn     func(ctx context.Context, identity models.ExternalIdentity) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) ResolveIdentity(ctx context.Context, identity models.ExternalIdentity) (models.User, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, identity)
	}
	return models.User{}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AccountService
// ─────────────────────────────────────────────

type mockAccountService struct {
	getUserFn    func(ctx context.Context, userID string) (models.User, error)
	listUsersFn  func(ctx context.Context) ([]models.User, error)
	updateUserFn func(ctx context.Context, userID string, update models.UserUpdate) (models.User, error)
	deleteUserFn func(ctx context.Context, userID string) error

	completeProfileFn func(ctx context.Context, userID string) (models.CompleteProfile, error)
	getProfileFn      func(ctx context.Context, userID string) (models.Profile, error)
	upsertProfileFn   func(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error)

	addApproverFn    func(ctx context.Context, approver models.Approver) (models.Approver, error)
	listApproversFn  func(ctx context.Context, userID string) ([]models.Approver, error)
	updateApproverFn func(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error)
	deleteApproverFn func(ctx context.Context, approverID int64, userID string) error
	validateFn       func(ctx context.Context, userID string) (bool, error)

	addRecipientFn    func(ctx context.Context, recipient models.Recipient) (models.Recipient, error)
	listRecipientsFn  func(ctx context.Context, userID string) ([]models.Recipient, error)
	updateRecipientFn func(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error)
	deleteRecipientFn func(ctx context.Context, recipientID int64, userID string) error
}

func (m *mockAccountService) GetUser(ctx context.Context, userID string) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockAccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockAccountService) UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, userID, update)
	}
	return models.User{}, nil
}

func (m *mockAccountService) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockAccountService) GetCompleteProfile(ctx context.Context, userID string) (models.CompleteProfile, error) {
	if m.completeProfileFn != nil {
		return m.completeProfileFn(ctx, userID)
	}
	return models.CompleteProfile{}, nil
}

func (m *mockAccountService) GetExtendedProfile(ctx context.Context, userID string) (models.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return models.Profile{}, nil
}

func (m *mockAccountService) UpsertExtendedProfile(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error) {
	if m.upsertProfileFn != nil {
		return m.upsertProfileFn(ctx, userID, upsert)
	}
	return models.Profile{}, nil
}

func (m *mockAccountService) AddApprover(ctx context.Context, approver models.Approver) (models.Approver, error) {
	if m.addApproverFn != nil {
		return m.addApproverFn(ctx, approver)
	}
	return models.Approver{}, nil
}

func (m *mockAccountService) ListApprovers(ctx context.Context, userID string) ([]models.Approver, error) {
	if m.listApproversFn != nil {
		return m.listApproversFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAccountService) UpdateApprover(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error) {
	if m.updateApproverFn != nil {
		return m.updateApproverFn(ctx, approverID, userID, update)
	}
	return models.Approver{}, nil
}

func (m *mockAccountService) DeleteApprover(ctx context.Context, approverID int64, userID string) error {
	if m.deleteApproverFn != nil {
		return m.deleteApproverFn(ctx, approverID, userID)
	}
	return nil
}

func (m *mockAccountService) ValidateMinimumApprovers(ctx context.Context, userID string) (bool, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, userID)
	}
	return false, nil
}

func (m *mockAccountService) AddRecipient(ctx context.Context, recipient models.Recipient) (models.Recipient, error) {
	if m.addRecipientFn != nil {
		return m.addRecipientFn(ctx, recipient)
	}
	return models.Recipient{}, nil
}

func (m *mockAccountService) ListRecipients(ctx context.Context, userID string) ([]models.Recipient, error) {
	if m.listRecipientsFn != nil {
		return m.listRecipientsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAccountService) UpdateRecipient(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error) {
	if m.updateRecipientFn != nil {
		return m.updateRecipientFn(ctx, recipientID, userID, update)
	}
	return models.Recipient{}, nil
}

func (m *mockAccountService) DeleteRecipient(ctx context.Context, recipientID int64, userID string) error {
	if m.deleteRecipientFn != nil {
		return m.deleteRecipientFn(ctx, recipientID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.NoteService
// ─────────────────────────────────────────────

type mockNoteService struct {
	addFn    func(ctx context.Context, note models.CreateNote) (models.Note, error)
	listFn   func(ctx context.Context, userID string) ([]models.NoteWithRecipients, error)
	getFn    func(ctx context.Context, noteID int64, userID string) (models.NoteWithRecipients, error)
	updateFn func(ctx context.Context, noteID int64, userID string, update models.NoteUpdate) (models.Note, error)
	deleteFn func(ctx context.Context, noteID int64, userID string) error
}

func (m *mockNoteService) AddNote(ctx context.Context, note models.CreateNote) (models.Note, error) {
	if m.addFn != nil {
		return m.addFn(ctx, note)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) ListNotes(ctx context.Context, userID string) ([]models.NoteWithRecipients, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNoteService) GetNote(ctx context.Context, noteID int64, userID string) (models.NoteWithRecipients, error) {
	if m.getFn != nil {
		return m.getFn(ctx, noteID, userID)
	}
	return models.NoteWithRecipients{}, nil
}

func (m *mockNoteService) UpdateNote(ctx context.Context, noteID int64, userID string, update models.NoteUpdate) (models.Note, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, noteID, userID, update)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) DeleteNote(ctx context.Context, noteID int64, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, noteID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// testUserID is the user id planted in the request context by asUser.
const testUserID = "google-123"

// newTestHandler builds a Handler with the given mocks; nil mocks are
// replaced with empty ones so handlers never dereference nil services.
func newTestHandler(auth *mockAuthService, account *mockAccountService, notes *mockNoteService) *Handler {
	if auth == nil {
		auth = &mockAuthService{}
	}
	if account == nil {
		account = &mockAccountService{}
	}
	if notes == nil {
		notes = &mockNoteService{}
	}

	return NewHandler(&service.Services{
		AuthService:    auth,
		AccountService: account,
		NoteService:    notes,
	}, logger.Nop())
}

// asUser attaches the authenticated user id to the request context, the way
// the auth middleware does.
func asUser(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, testUserID)
	return r.WithContext(ctx)
}

// withURLParam attaches a chi route context carrying a single URL parameter.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// jsonBody serialises v for use as a request body.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
