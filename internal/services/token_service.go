package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kampongconnect/backend/internal/config"
	"github.com/kampongconnect/backend/internal/models"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims is the session payload signed into every token
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and checks HS256 session tokens. Logged out tokens are
// blacklisted in Redis until they expire; without Redis, logout is a no-op
// on the server side.
type TokenService struct {
	secret []byte
	expiry time.Duration
	redis  *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewTokenService(cfg config.JWTConfig, redisClient *redis.Client, logger *zap.Logger) *TokenService {
	return &TokenService{
		secret: []byte(cfg.SecretKey),
		expiry: time.Duration(cfg.ExpiryHours) * time.Hour,
		redis:  redisClient,
		logger: logger.Named("tokens"),
		now:    time.Now,
	}
}

// Issue signs a token for account, returning it with its expiry
func (s *TokenService) Issue(account models.Account) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies a token's signature and expiry and rejects revoked tokens
func (s *TokenService) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		n, err := s.redis.Exists(ctx, blacklistKey(tokenString)).Result()
		if err != nil {
			// A token cannot be trusted if the blacklist cannot be read
			s.logger.Error("blacklist lookup failed", zap.Error(err))
			return nil, fmt.Errorf("check token blacklist: %w", err)
		}
		if n > 0 {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke blacklists a token for the rest of its lifetime
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	if s.redis == nil {
		s.logger.Debug("no redis configured, token not blacklisted", zap.String("account_id", claims.Subject))
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(tokenString), "1", ttl).Err(); err != nil {
		s.logger.Error("failed to blacklist token", zap.String("account_id", claims.Subject), zap.Error(err))
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}
