// Package memory implements an in-memory credential store for development and testing.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository keeps users in a map keyed by name.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) FindByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[name]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Create rejects a duplicate name the way a primary key constraint would.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Name]; exists {
		return domain.NewStorageError("insert user", fmt.Errorf("duplicate key %q", user.Name))
	}
	r.users[user.Name] = *user
	return nil
}
