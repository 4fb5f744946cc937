package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

// UserService implements account lookup and creation.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log, now: time.Now}
}

func (s *UserService) Get(ctx context.Context, name string) (*domain.User, error) {
	return s.repo.FindByName(ctx, name)
}

// Create hashes password and stores a new user. Name uniqueness is left to
// the store.
func (s *UserService) Create(ctx context.Context, name, password, email string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user", name).Msg("user created")
	return user, nil
}
