package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paisapal/paisa/internal/store"
)

func TestSignUpAndSignIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := NewLocalProvider(store.NewMemory())

	created, err := p.SignUp(ctx, "  Asha@Example.com ", "secret123", "Asha", "9876543210")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "asha@example.com", created.Email)
	require.Equal(t, "Asha", created.Name)
	require.Equal(t, "9876543210", created.Phone)

	signed, err := p.SignIn(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, created, signed)
}

func TestSignUpRejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := NewLocalProvider(store.NewMemory())

	_, err := p.SignUp(ctx, "", "secret123", "Noone", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "email is required")

	_, err = p.SignUp(ctx, "short@example.com", "12345", "Short", "")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = p.SignUp(ctx, "dup@example.com", "secret123", "First", "")
	require.NoError(t, err)
	_, err = p.SignUp(ctx, "DUP@example.com", "another123", "Second", "")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestSignInRejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := NewLocalProvider(store.NewMemory())

	_, err := p.SignUp(ctx, "asha@example.com", "secret123", "Asha", "")
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "asha@example.com", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := NewLocalProvider(store.NewMemory())

	profile, err := p.SignUp(ctx, "asha@example.com", "secret123", "Asha", "")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))

	events := p.Events()

	e := <-events
	require.Equal(t, EventSignIn, e.Type)
	require.Equal(t, profile, e.Profile)

	e = <-events
	require.Equal(t, EventSignOut, e.Type)
}

func TestCredentialsSurviveDataClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := store.NewMemory()
	p := NewLocalProvider(s)

	_, err := p.SignUp(ctx, "asha@example.com", "secret123", "Asha", "")
	require.NoError(t, err)

	// Logout wipes the app data prefix, never the account records.
	require.NoError(t, s.Clear(ctx, "paisa:"))

	_, err = p.SignIn(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
}
