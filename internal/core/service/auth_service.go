package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

const defaultLoginTTL = 30 * time.Minute

// AuthService implements credential checks, login and bearer token resolution.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	loginTTL time.Duration
	log      zerolog.Logger

	// dummyHash is compared against when the user does not exist so that
	// unknown names cost the same bcrypt round as wrong passwords.
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	loginTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if loginTTL <= 0 {
		loginTTL = defaultLoginTTL
	}
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		loginTTL:  loginTTL,
		log:       log,
		dummyHash: dummy,
	}
}

// Authenticate returns the user when password matches the stored hash.
// Unknown users and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	signed, expiresAt, err := s.tokens.Issue(user.Name, s.loginTTL)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("user", user.Name).Time("expires_at", expiresAt).Msg("access token issued")

	return &domain.Token{
		AccessToken: signed,
		TokenType:   domain.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// Resolve validates a bearer token and re-reads its subject from the store.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByName(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
