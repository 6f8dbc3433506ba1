package service

import (
	"context"
	"fmt"
	"time"

	"github.com/keepsake-dev/keepsake/internal/config"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/store"
	"github.com/keepsake-dev/keepsake/internal/utils"
	"github.com/keepsake-dev/keepsake/models"
)

// authService is the concrete implementation of AuthService.
// It resolves OAuth identities to local accounts and manages the JWT token
// lifecycle using a UserRepository for persistence.
type authService struct {
	// userRepository is the data-access layer used to resolve and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// ResolveIdentity maps an external OAuth identity to a local account.
//
// On first login a user record is created; on every subsequent login the
// mutable identity fields are refreshed and last_login is stamped. Both cases
// go through a single repository upsert, so concurrent first logins of the
// same identity cannot create duplicate accounts.
//
// Returns the resolved user or:
//   - ErrInvalidDataProvided if the identity lacks an id or email.
//   - A wrapped storage error if the repository call fails (e.g. the email is
//     already bound to a different identity — see store.ErrEmailAlreadyExists).
func (a *authService) ResolveIdentity(ctx context.Context, identity models.ExternalIdentity) (models.User, error) {
	log := logger.FromContext(ctx)

	if identity.ID == "" || identity.Email == "" {
		log.Error().Str("provider", identity.Provider).Msg("invalid identity data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if identity.Provider == "" {
		identity.Provider = "google"
	}

	user, err := a.userRepository.UpsertOnLogin(ctx, identity)
	if err != nil {
		log.Err(err).Str("user_id", identity.ID).Msg("identity resolution ended with error")
		return models.User{}, fmt.Errorf("identity resolution ended with error: %w", err)
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
