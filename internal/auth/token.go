package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 4 * time.Hour

var (
	// ErrEmptySecret is returned when the manager is built without a signing secret.
	ErrEmptySecret = errors.New("signing secret must not be empty")
	// ErrInvalidToken covers every verification failure: malformed, bad signature or expired.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager issues and verifies HS256 bearer tokens under one immutable secret.
// It holds no mutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. Rotating the secret means building a new manager;
// tokens signed by the previous one never verify under it.
func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)

	tm := &TokenManager{secret: key, ttl: TokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Issue signs a token asserting identity, valid for TokenTTL from now.
func (tm *TokenManager) Issue(identity Identity) (string, time.Time, error) {
	// Verify applies the same check, so every issued token round-trips.
	if _, err := NewIdentity(identity.String()); err != nil {
		return "", time.Time{}, err
	}

	issuedAt := tm.now()
	claims := jwt.RegisteredClaims{
		Subject:   identity.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify returns the identity a token asserts. Any failure yields ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string) (Identity, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	identity, err := NewIdentity(claims.Subject)
	if err != nil {
		return "", ErrInvalidToken
	}
	return identity, nil
}
