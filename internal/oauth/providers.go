// Package oauth wires the goth OAuth providers used for login.
package oauth

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/keepsake-dev/keepsake/internal/config"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

// InitProviders configures gothic's session store and registers the Google
// OAuth provider.
//
// Gothic keeps its own gorilla/sessions cookie store for the OAuth handshake
// state. Its default has Secure=true, which breaks localhost over plain HTTP,
// so the store is configured explicitly with Secure tied to the environment.
//
// When no Google client id is configured the provider registration is skipped
// with a warning: the server still starts, token-authenticated routes keep
// working, but login is unavailable until credentials are supplied.
func InitProviders(cfg *config.StructuredConfig, log *logger.Logger) {
	gothStore := sessions.NewCookieStore([]byte(cfg.App.SessionSecret))
	gothStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.App.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = gothStore

	if cfg.OAuth.GoogleClientID == "" {
		log.Warn().
			Str("func", "InitProviders").
			Msg("GOOGLE_CLIENT_ID not set, OAuth login will not work until credentials are configured")
		return
	}

	goth.UseProviders(
		google.New(
			cfg.OAuth.GoogleClientID,
			cfg.OAuth.GoogleClientSecret,
			cfg.OAuth.GoogleCallbackURL,
			"email",
			"profile",
		),
	)

	log.Info().Str("func", "InitProviders").Msg("goth providers initialized: google")
}
