// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"net/http"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/store"
	"github.com/keepsake-dev/keepsake/models"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

// beginGoogleLogin starts the Google OAuth handshake. Gothic resolves the
// provider from the request query, so the provider name is injected there
// before delegating.
func (h *Handler) beginGoogleLogin(w http.ResponseWriter, r *http.Request) {
	setProviderQueryParam(r, "google")
	gothic.BeginAuthHandler(w, r)
}

// googleCallback completes the OAuth handshake, upserts the account from the
// verified identity and issues a bearer token for subsequent API calls.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	setProviderQueryParam(r, "google")
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		log.Error().Err(err).Msg("OAuth handshake failed")
		h.respondJSON(w, r, models.ErrorResponse{
			Error:   http.StatusText(http.StatusUnauthorized),
			Message: "authentication failed",
		}, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.ResolveIdentity(ctx, externalIdentity(gothUser))
	if err != nil {
		log.Error().Err(err).Msg("identity resolution failed")
		h.respondError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("token creation failed")
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	h.respondJSON(w, r, models.LoginResponse{
		Message: "login successful",
		User:    user,
		Token:   token.SignedString,
	}, http.StatusOK)
}

// authStatus reports whether the caller holds a valid token. It never fails
// on bad credentials: any token problem yields isAuthenticated=false.
func (h *Handler) authStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	unauthenticated := models.AuthStatusResponse{IsAuthenticated: false}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		h.respondJSON(w, r, unauthenticated, http.StatusOK)
		return
	}

	tokenString, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		h.respondJSON(w, r, unauthenticated, http.StatusOK)
		return
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		h.respondJSON(w, r, unauthenticated, http.StatusOK)
		return
	}

	user, err := h.services.AccountService.GetUser(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondJSON(w, r, unauthenticated, http.StatusOK)
			return
		}
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.AuthStatusResponse{
		IsAuthenticated: true,
		User:            &user,
	}, http.StatusOK)
}

// logout clears the gothic session cookie. Bearer tokens are not revocable;
// the client is expected to discard its copy.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := gothic.Logout(w, r); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("gothic session cleanup failed")
	}

	h.respondJSON(w, r, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// health is the liveness endpoint.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, models.MessageResponse{Message: "ok"}, http.StatusOK)
}

// setProviderQueryParam injects the goth provider name into the request
// query, which is where gothic looks it up.
func setProviderQueryParam(r *http.Request, provider string) {
	q := r.URL.Query()
	q.Set("provider", provider)
	r.URL.RawQuery = q.Encode()
}

// externalIdentity converts a completed goth user into the identity shape
// the auth service consumes.
func externalIdentity(gothUser goth.User) models.ExternalIdentity {
	identity := models.ExternalIdentity{
		ID:       gothUser.UserID,
		Email:    gothUser.Email,
		Name:     gothUser.Name,
		Provider: gothUser.Provider,
	}

	if gothUser.AvatarURL != "" {
		avatar := gothUser.AvatarURL
		identity.Picture = &avatar
	}

	return identity
}
