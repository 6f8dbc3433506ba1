package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/keepsake-dev/keepsake/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	account := &mockAccountService{
		listUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{
				{ID: "google-456", Email: "jane@example.com"},
				{ID: testUserID, Email: "john@example.com"},
			}, nil
		},
	}
	h := newTestHandler(nil, account, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "google-456", resp.Users[0].ID)
}

func TestGetMe(t *testing.T) {
	account := &mockAccountService{
		getUserFn: func(_ context.Context, userID string) (models.User, error) {
			assert.Equal(t, testUserID, userID)
			return models.User{ID: userID, Name: "John"}, nil
		},
	}
	h := newTestHandler(nil, account, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	rec := httptest.NewRecorder()

	h.getMe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"John"`)
}

// TestGetMe_NoContextUserID verifies the guard against routes wired without
// the auth middleware.
func TestGetMe_NoContextUserID(t *testing.T) {
	h := newTestHandler(nil, &mockAccountService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()

	h.getMe(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateMe(t *testing.T) {
	account := &mockAccountService{
		updateUserFn: func(_ context.Context, userID string, update models.UserUpdate) (models.User, error) {
			require.NotNil(t, update.Name)
			return models.User{ID: userID, Name: *update.Name}, nil
		},
	}
	h := newTestHandler(nil, account, nil)

	body := jsonBody(t, models.UserUpdate{Name: strPtr("Johnny")})
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.updateMe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Johnny"`)
}

func TestUpdateMe_InvalidJSON(t *testing.T) {
	h := newTestHandler(nil, &mockAccountService{}, nil)

	req := asUser(httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader("{invalid json}")))
	rec := httptest.NewRecorder()

	h.updateMe(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMe(t *testing.T) {
	deleted := false
	account := &mockAccountService{
		deleteUserFn: func(_ context.Context, userID string) error {
			assert.Equal(t, testUserID, userID)
			deleted = true
			return nil
		},
	}
	h := newTestHandler(nil, account, nil)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/users/me", nil))
	rec := httptest.NewRecorder()

	h.deleteMe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}

func TestCompleteProfile(t *testing.T) {
	account := &mockAccountService{
		completeProfileFn: func(_ context.Context, userID string) (models.CompleteProfile, error) {
			return models.CompleteProfile{
				User:      models.User{ID: userID},
				Profile:   nil,
				Approvers: []models.Approver{{ID: 1, UserID: userID, Name: "Jane"}},
			}, nil
		},
	}
	h := newTestHandler(nil, account, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/users/profile/complete", nil))
	rec := httptest.NewRecorder()

	h.completeProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CompleteProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testUserID, resp.Profile.User.ID)
	assert.Nil(t, resp.Profile.Profile)
	require.Len(t, resp.Profile.Approvers, 1)
}

func strPtr(s string) *string {
	return &s
}
