package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kampongconnect/backend/internal/config"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testJWT = config.JWTConfig{SecretKey: "test-secret", ExpiryHours: 24}

func newTestTokens(t *testing.T, redisMock bool) (*TokenService, redismock.ClientMock) {
	t.Helper()
	var s *TokenService
	var mock redismock.ClientMock
	if redisMock {
		client, m := redismock.NewClientMock()
		s = NewTokenService(testJWT, client, zaptest.NewLogger(t))
		mock = m
	} else {
		s = NewTokenService(testJWT, nil, zaptest.NewLogger(t))
	}
	s.now = func() time.Time { return testNow }
	return s, mock
}

var testVolunteer = models.Account{ID: "user_volunteer1", Role: models.RoleVolunteer}

func TestTokenService_IssueAndParse(t *testing.T) {
	tokens, _ := newTestTokens(t, false)

	token, expiresAt, err := tokens.Issue(testVolunteer)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(24*time.Hour), expiresAt)

	claims, err := tokens.Parse(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_volunteer1", claims.Subject)
	assert.Equal(t, models.RoleVolunteer, claims.Role)
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	tokens, _ := newTestTokens(t, false)
	ctx := context.Background()

	token, _, err := tokens.Issue(testVolunteer)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenService(config.JWTConfig{SecretKey: "other", ExpiryHours: 24}, nil, zaptest.NewLogger(t))
		other.now = tokens.now
		_, err := other.Parse(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := *tokens
		late.now = func() time.Time { return testNow.Add(25 * time.Hour) }
		_, err := late.Parse(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			Role: models.RoleElder,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user_elder1",
				ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
			},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tokens.Parse(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		raw, _, err := tokens.Issue(models.Account{ID: "user_x", Role: models.Role("admin")})
		require.NoError(t, err)
		_, err = tokens.Parse(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	tokens, mock := newTestTokens(t, true)
	ctx := context.Background()

	token, _, err := tokens.Issue(testVolunteer)
	require.NoError(t, err)

	mock.ExpectExists("blacklist:" + token).SetVal(0)
	_, err = tokens.Parse(ctx, token)
	require.NoError(t, err)

	mock.ExpectSet("blacklist:"+token, "1", 24*time.Hour).SetVal("OK")
	require.NoError(t, tokens.Revoke(ctx, token))

	mock.ExpectExists("blacklist:" + token).SetVal(1)
	_, err = tokens.Parse(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenService_BlacklistUnavailable(t *testing.T) {
	tokens, mock := newTestTokens(t, true)
	ctx := context.Background()

	token, _, err := tokens.Issue(testVolunteer)
	require.NoError(t, err)

	mock.ExpectExists("blacklist:" + token).SetErr(errors.New("connection refused"))
	_, err = tokens.Parse(ctx, token)
	assert.Error(t, err)

	mock.ExpectSet("blacklist:"+token, "1", 24*time.Hour).SetErr(errors.New("connection refused"))
	assert.Error(t, tokens.Revoke(ctx, token))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenService_RevokeWithoutRedis(t *testing.T) {
	tokens, _ := newTestTokens(t, false)

	token, _, err := tokens.Issue(testVolunteer)
	require.NoError(t, err)

	assert.NoError(t, tokens.Revoke(context.Background(), token))
	_, err = tokens.Parse(context.Background(), token)
	assert.NoError(t, err)

	assert.ErrorIs(t, tokens.Revoke(context.Background(), "garbage"), ErrInvalidToken)
}
