package ports

import (
	"context"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

// UserRepository is the credential store. Implementations return
// domain.ErrUserNotFound on a lookup miss and *domain.StorageError on
// any failure of the underlying store.
type UserRepository interface {
	FindByName(ctx context.Context, name string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
