package ports

import (
	"context"
	"time"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenManager signs and verifies access tokens.
type TokenManager interface {
	Issue(subject string, ttl time.Duration) (string, time.Time, error)
	Parse(token string) (*domain.AccessClaims, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Token, error)
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

type UserService interface {
	Get(ctx context.Context, name string) (*domain.User, error)
	Create(ctx context.Context, name, password, email string) (*domain.User, error)
}
