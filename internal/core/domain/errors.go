package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both an unknown user and a wrong password.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthorized covers every bearer token failure: bad signature,
	// malformed token, expiry, missing subject or unknown subject.
	ErrUnauthorized = errors.New("could not validate credentials")

	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// StorageError wraps a failure of the underlying data store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err as a StorageError for operation op.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
