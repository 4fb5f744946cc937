package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

const defaultTokenTTL = 15 * time.Minute

// JWTManager issues and verifies HS256 access tokens.
type JWTManager struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(secret string, defaultTTL time.Duration) *JWTManager {
	if defaultTTL <= 0 {
		defaultTTL = defaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), defaultTTL: defaultTTL, now: time.Now}
}

// Issue signs a token for subject valid for ttl. A zero ttl selects the
// default; a negative ttl yields a token that is already expired.
func (m *JWTManager) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	now := m.now().UTC()
	expiresAt := now.Add(ttl)

	claims := domain.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, algorithm and expiry. Every failure is reported
// as domain.ErrUnauthorized.
func (m *JWTManager) Parse(token string) (*domain.AccessClaims, error) {
	claims := &domain.AccessClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil || !tkn.Valid {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
