package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/models"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type challengeStore interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	GetDel(ctx context.Context, key string, dest interface{}) error
}

// AuthConfig tunes token validation and the challenge store.
type AuthConfig struct {
	AccessTokenSecret string
	Issuer            string
	ChallengeTTL      time.Duration
}

// Challenge is a one-shot nonce handed to the external authenticator.
// Entries live only in the TTL store and are consumed on first read;
// nothing survives a process restart.
type Challenge struct {
	Nonce     string    `json:"nonce"`
	UserID    int64     `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService validates access tokens minted by the external
// authenticator and manages its challenge nonces.
type AuthService struct {
	store  challengeStore
	logger *zap.Logger
	config AuthConfig
	now    func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(store challengeStore, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ChallengeTTL <= 0 {
		config.ChallengeTTL = 5 * time.Minute
	}
	return &AuthService{store: store, logger: logger, config: config, now: time.Now}
}

// ValidateToken parses and verifies an access token, returning the
// caller identity the rest of the engine consumes.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	if claims.UserID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token carries no user identity")
	}
	return claims, nil
}

// IssueChallenge stores a fresh nonce for the user under a TTL and
// returns it for the authenticator to sign.
func (s *AuthService) IssueChallenge(ctx context.Context, userID int64) (*Challenge, error) {
	now := s.now().UTC()
	challenge := &Challenge{
		Nonce:     uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.ChallengeTTL),
	}
	stored, err := s.store.SetNX(ctx, challengeKey(challenge.Nonce), challenge, s.config.ChallengeTTL)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store challenge")
	}
	if !stored {
		return nil, appErrors.Clone(appErrors.ErrConflict, "challenge nonce collision")
	}
	return challenge, nil
}

// ConsumeChallenge fetches and deletes a nonce in one step, so a
// consumed challenge cannot be replayed. Expiry is re-checked on read;
// the store's TTL is a backstop, not the authority.
func (s *AuthService) ConsumeChallenge(ctx context.Context, nonce string) (*Challenge, error) {
	var challenge Challenge
	if err := s.store.GetDel(ctx, challengeKey(nonce), &challenge); err != nil {
		if err == appErrors.ErrCacheMiss {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unknown or expired challenge")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read challenge")
	}
	if s.now().UTC().After(challenge.ExpiresAt) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "challenge expired")
	}
	return &challenge, nil
}

func challengeKey(nonce string) string {
	return "auth:challenge:" + nonce
}
