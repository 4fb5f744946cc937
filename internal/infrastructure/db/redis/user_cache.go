package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

var _ ports.UserRepository = (*CachedUserRepository)(nil)

// CachedUserRepository is a read-through cache in front of another store.
// Key format: user:<name>. Only hits of the backing store are cached.
// Redis failures are logged and the backing store answers instead.
type CachedUserRepository struct {
	next   ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedUserRepository(next ports.UserRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedUserRepository{next: next, client: client, ttl: ttl, log: log}
}

type cachedUser struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *CachedUserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	raw, err := r.client.Get(ctx, r.key(name)).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if jsonErr := json.Unmarshal(raw, &cu); jsonErr == nil {
			return &domain.User{Name: cu.Name, Email: cu.Email, PasswordHash: cu.Password, CreatedAt: cu.CreatedAt}, nil
		}
		r.log.Warn().Str("user", name).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		r.log.Warn().Err(err).Str("user", name).Msg("user cache read failed, using store")
	}

	user, err := r.next.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	r.store(ctx, user)
	return user, nil
}

func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(user.Name)).Err(); err != nil {
		r.log.Warn().Err(err).Str("user", user.Name).Msg("user cache evict failed")
	}
	return nil
}

func (r *CachedUserRepository) store(ctx context.Context, u *domain.User) {
	raw, err := json.Marshal(cachedUser{Name: u.Name, Email: u.Email, Password: u.PasswordHash, CreatedAt: u.CreatedAt})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, r.key(u.Name), raw, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("user", u.Name).Msg("user cache write failed")
	}
}

func (r *CachedUserRepository) key(name string) string {
	return fmt.Sprintf("user:%s", name)
}
