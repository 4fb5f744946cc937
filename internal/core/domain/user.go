package domain

import "time"

// User models an account stored in the credential store.
// PasswordHash is the bcrypt digest and is exposed as "password" in JSON.
type User struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}
