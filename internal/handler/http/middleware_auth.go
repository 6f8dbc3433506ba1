// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/utils"
)

// auth is the middleware guarding every /api route. It extracts the bearer
// token from the "Authorization" header, validates it, and stores the token's
// user id in the request context under [utils.UserIDCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Error().Err(ErrEmptyAuthorizationHeader).Msg("unauthorized request")
			h.respondError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Error().Err(err).Msg("unauthorized request")
			h.respondError(w, r, err)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Error().Err(err).Msg("token validation failed")
			h.respondError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token value from a
// "Bearer <token>" header.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	token := headerParts[1]
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
