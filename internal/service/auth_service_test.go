package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/models"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type challengeStoreStub struct {
	items map[string][]byte
}

func newChallengeStoreStub() *challengeStoreStub {
	return &challengeStoreStub{items: map[string][]byte{}}
}

func (s *challengeStoreStub) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if _, exists := s.items[key]; exists {
		return false, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	s.items[key] = raw
	return true, nil
}

func (s *challengeStoreStub) GetDel(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	delete(s.items, key)
	return json.Unmarshal(raw, dest)
}

func signToken(t *testing.T, secret, issuer string, userID int64) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: userID,
		Role:   models.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(newChallengeStoreStub(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret", Issuer: "scheduling-api",
	})

	claims, err := svc.ValidateToken(signToken(t, "secret", "scheduling-api", 7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	_, err = svc.ValidateToken(signToken(t, "wrong-secret", "scheduling-api", 7))
	require.Error(t, err)

	_, err = svc.ValidateToken(signToken(t, "secret", "someone-else", 7))
	require.Error(t, err)

	_, err = svc.ValidateToken(signToken(t, "secret", "scheduling-api", 0))
	require.Error(t, err)
}

func TestAuthServiceChallengeIsOneShot(t *testing.T) {
	store := newChallengeStoreStub()
	svc := NewAuthService(store, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret", Issuer: "scheduling-api", ChallengeTTL: time.Minute,
	})

	issued, err := svc.IssueChallenge(context.Background(), 7)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Nonce)

	consumed, err := svc.ConsumeChallenge(context.Background(), issued.Nonce)
	require.NoError(t, err)
	assert.Equal(t, int64(7), consumed.UserID)

	_, err = svc.ConsumeChallenge(context.Background(), issued.Nonce)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceChallengeExpiryRecheckedOnRead(t *testing.T) {
	store := newChallengeStoreStub()
	svc := NewAuthService(store, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret", Issuer: "scheduling-api", ChallengeTTL: time.Minute,
	})

	issued, err := svc.IssueChallenge(context.Background(), 7)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ConsumeChallenge(context.Background(), issued.Nonce)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
