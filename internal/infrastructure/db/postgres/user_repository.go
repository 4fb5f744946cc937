package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

const (
	findUserQuery = `SELECT name, email, created_at, password FROM users WHERE name = $1`

	insertUserQuery = `INSERT INTO users (name, password, email, created_at) VALUES ($1, $2, $3, $4)`
)

// UserRepository reads and writes the users table. Each call holds one
// connection from the pool and returns it before the call ends.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, domain.NewStorageError("find user", err)
	}
	defer conn.Close()

	var u domain.User
	err = conn.QueryRowContext(ctx, findUserQuery, name).Scan(&u.Name, &u.Email, &u.CreatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("find user", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (err error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return domain.NewStorageError("insert user", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("insert user", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, insertUserQuery, user.Name, user.PasswordHash, user.Email, user.CreatedAt); err != nil {
		return domain.NewStorageError("insert user", err)
	}
	if err = tx.Commit(); err != nil {
		return domain.NewStorageError("commit user", err)
	}
	return nil
}
