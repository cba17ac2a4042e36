package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/auth"
	"github.com/spec-kit/support-workflow/internal/config"
	apperrors "github.com/spec-kit/support-workflow/pkg/util"
)

// AuthService exchanges the configured API key for access tokens.
type AuthService struct {
	tokens     *auth.TokenManager
	apiKeyHash string
}

// NewAuthService constructs the service. When no precomputed hash is
// configured, the plaintext key from config is hashed at startup so
// comparison is always against a bcrypt hash.
func NewAuthService(cfg config.Config, logger *zap.Logger) (*AuthService, error) {
	hash := cfg.Auth.APIKeyHash
	if hash == "" {
		var err error
		hash, err = auth.HashSecret(cfg.Auth.APIKey, cfg.Auth.BcryptCost)
		if err != nil {
			return nil, err
		}
		logger.Warn("AUTH_API_KEY_HASH not set; hashed AUTH_API_KEY at startup")
	}

	return &AuthService{
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		apiKeyHash: hash,
	}, nil
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// ExchangeAPIKey verifies the API key and issues a client JWT.
func (s *AuthService) ExchangeAPIKey(apiKey, clientID string) (string, time.Time, error) {
	if err := auth.CompareSecret(s.apiKeyHash, apiKey); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid api key")
	}
	if clientID == "" {
		clientID = "api-client"
	}
	return s.tokens.GenerateToken(clientID)
}
