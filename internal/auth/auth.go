// Package auth is the authentication collaborator. The core only consumes
// the resulting profile fields to seed the user entity; session handling
// stays inside the provider.
package auth

import (
	"context"
	"errors"
)

// EventType distinguishes sign-in from sign-out transitions.
type EventType string

// Auth event types.
const (
	EventSignIn  EventType = "sign-in"
	EventSignOut EventType = "sign-out"
)

// Profile is the identity a provider supplies on a successful sign-in.
type Profile struct {
	ID    string
	Email string
	Name  string
	Phone string
}

// Event is a sign-in/sign-out transition.
type Event struct {
	Type    EventType
	Profile Profile
}

// Provider supplies user identities and a stream of auth transitions.
type Provider interface {
	SignUp(ctx context.Context, email, password, name, phone string) (Profile, error)
	SignIn(ctx context.Context, email, password string) (Profile, error)
	SignOut(ctx context.Context) error
	Events() <-chan Event
}

// Provider errors surfaced to the caller.
var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrUserExists         = errors.New("auth: an account with this email already exists")
	ErrWeakPassword       = errors.New("auth: password must be at least 6 characters")
)
