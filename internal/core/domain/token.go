package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the token_type returned alongside every access token.
const TokenTypeBearer = "bearer"

// AccessClaims is the claim set carried by an access token.
// Subject holds the user name.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// Token is a freshly issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
