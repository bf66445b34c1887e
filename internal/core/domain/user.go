package domain

import "time"

// User models an account held by the Cinescope auth service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	Banned       bool      `json:"banned"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUserInput carries what is needed to create an account. Password is plain text.
type NewUserInput struct {
	Email    string
	FullName string
	Password string
	Verified bool
	Banned   bool
	Roles    []Role
}
