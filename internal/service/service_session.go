package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/utils"
	"github.com/MKhiriev/go-face-login/models"
)

// sessionService is the concrete implementation of SessionService.
// It signs tokens with HMAC-SHA256 and stamps them with the configured
// issuer and lifetime.
type sessionService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now is the clock used for issuance and expiry checks. Production code
	// uses time.Now; tests substitute a fixed clock to drive expiry.
	now func() time.Time

	logger *logger.Logger
}

// NewSessionService constructs a SessionService populated with token
// parameters from cfg. The returned service is safe for concurrent use; all
// state is read-only after construction.
func NewSessionService(cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT for the given username.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim and username as the "sub" claim,
// and expires after tokenDuration.
//
// Returns the token model on success or a wrapped ErrTokenCreationFailed.
func (s *sessionService) CreateToken(ctx context.Context, username string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, username, s.now(), s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("username", username).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the issuer claim, and the expiry against the service clock. Any validation
// failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer, s.now)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
