// Package auth issues and verifies session tokens and carries the resolved
// caller identity through request contexts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	Issuer   = "campusforum-api"
	Audience = "campusforum-client"
)

// ErrInvalidToken is returned for tokens that fail signature, claim, or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrRevokedToken is returned for tokens whose id has been revoked by logout.
var ErrRevokedToken = errors.New("token has been revoked")

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Session is a verified token together with the claims needed to revoke it.
type Session struct {
	Identity
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a TokenManager signing with secret; tokens live for ttl.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed token for id.
func (m *TokenManager) Issue(id Identity) (string, Session, error) {
	if len(m.secret) == 0 {
		return "", Session{}, fmt.Errorf("JWT secret not configured")
	}

	now := m.now()
	session := Session{
		Identity:  id,
		TokenID:   newTokenID(now),
		ExpiresAt: now.Add(m.ttl),
	}
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(id.UserID), 10),
		"username": id.Username,
		"iss":      Issuer,
		"aud":      Audience,
		"exp":      session.ExpiresAt.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      session.TokenID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, session, nil
}

// Parse verifies tokenString and returns its session. It does not consult the
// revocation list; see IsRevoked.
func (m *TokenManager) Parse(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Session{}, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	jti, _ := claims["jti"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Session{}, ErrInvalidToken
	}

	return Session{
		Identity:  Identity{UserID: uint(userID), Username: username},
		TokenID:   jti,
		ExpiresAt: exp.Time,
	}, nil
}

func newTokenID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString())
}

// RevokedKey is the Redis key marking token id jti as revoked.
func RevokedKey(jti string) string {
	return "blacklist:" + jti
}

// Revoke marks the session's token id as revoked until the token would have
// expired anyway. A nil client or an empty token id is a no-op.
func Revoke(ctx context.Context, rdb *redis.Client, s Session) error {
	if rdb == nil || s.TokenID == "" {
		return nil
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := rdb.Set(ctx, RevokedKey(s.TokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked. Lookup failures are returned
// to the caller, which decides whether to fail open.
func IsRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	if rdb == nil || jti == "" {
		return false, nil
	}
	n, err := rdb.Exists(ctx, RevokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
