package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/models"
	"github.com/paisapal/paisa/internal/store"
)

// credentialsKey deliberately sits outside the repository's "paisa:"
// prefix so accounts survive the logout collection clear.
const credentialsKey = "paisa-auth:credentials"

const minPasswordLength = 6

type credentialRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash []byte `json:"passwordHash"`
}

// LocalProvider keeps bcrypt-hashed credentials in the key-value store.
// It stands in for a hosted identity provider on a single device.
type LocalProvider struct {
	store  store.Store
	events chan Event
}

// NewLocalProvider creates a provider over the given store.
func NewLocalProvider(s store.Store) *LocalProvider {
	return &LocalProvider{
		store:  s,
		events: make(chan Event, 8),
	}
}

// SignUp registers a new account and emits a sign-in event. The returned
// profile seeds the user entity.
func (p *LocalProvider) SignUp(ctx context.Context, email, password, name, phone string) (Profile, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Profile{}, fmt.Errorf("auth: email is required")
	}
	if len(password) < minPasswordLength {
		return Profile{}, ErrWeakPassword
	}

	creds, err := p.loadCredentials(ctx)
	if err != nil {
		return Profile{}, err
	}
	if _, exists := creds[email]; exists {
		return Profile{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, fmt.Errorf("hash password: %w", err)
	}

	creds[email] = credentialRecord{
		ID:           models.NewID(),
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
	}
	if err := p.saveCredentials(ctx, creds); err != nil {
		return Profile{}, err
	}

	profile := Profile{ID: creds[email].ID, Email: email, Name: name, Phone: phone}
	logger.Log.Info().Str("user", logger.HashEmail(email)).Msg("account created")
	p.emit(Event{Type: EventSignIn, Profile: profile})
	return profile, nil
}

// SignIn verifies the password and emits a sign-in event.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (Profile, error) {
	email = normalizeEmail(email)

	creds, err := p.loadCredentials(ctx)
	if err != nil {
		return Profile{}, err
	}
	rec, ok := creds[email]
	if !ok {
		return Profile{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)) != nil {
		return Profile{}, ErrInvalidCredentials
	}

	profile := Profile{ID: rec.ID, Email: email, Name: rec.Name, Phone: rec.Phone}
	logger.Log.Info().Str("user", logger.HashEmail(email)).Msg("signed in")
	p.emit(Event{Type: EventSignIn, Profile: profile})
	return profile, nil
}

// SignOut emits a sign-out event. Credentials are kept.
func (p *LocalProvider) SignOut(_ context.Context) error {
	p.emit(Event{Type: EventSignOut})
	return nil
}

// Events returns the sign-in/sign-out transition stream.
func (p *LocalProvider) Events() <-chan Event {
	return p.events
}

func (p *LocalProvider) emit(e Event) {
	select {
	case p.events <- e:
	default:
		// No listener; transitions are advisory.
	}
}

func (p *LocalProvider) loadCredentials(ctx context.Context) (map[string]credentialRecord, error) {
	raw, err := p.store.Get(ctx, credentialsKey)
	if errors.Is(err, store.ErrNotFound) {
		return make(map[string]credentialRecord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	var creds map[string]credentialRecord
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

func (p *LocalProvider) saveCredentials(ctx context.Context, creds map[string]credentialRecord) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := p.store.Set(ctx, credentialsKey, raw); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Provider = (*LocalProvider)(nil)
