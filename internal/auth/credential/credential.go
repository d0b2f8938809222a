// Package credential owns user identity records and password verification.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
	"github.com/jmoran/taskboard/internal/platform/id"
	"github.com/jmoran/taskboard/internal/storage"
)

var (
	// ErrMissingFields indicates a registration without email or password.
	ErrMissingFields = apperrors.New(apperrors.CodeValidation, "Email and password required")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = apperrors.New(apperrors.CodeDuplicateEmail, "Email already registered")
	// ErrAuthFailed is returned for unknown emails and wrong passwords alike,
	// so a login probe cannot tell the two apart.
	ErrAuthFailed = apperrors.New(apperrors.CodeAuthFailed, "Invalid credentials")
)

// Store verifies and registers credentials against a user store.
type Store struct {
	users storage.UserStore
	cost  int
	now   func() time.Time
	newID func() (string, error)
}

// Option customizes a Store.
type Option func(*Store)

// WithCost overrides the bcrypt work factor. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates a credential store hashing at bcrypt.DefaultCost.
func NewStore(users storage.UserStore, opts ...Option) *Store {
	s := &Store{
		users: users,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		newID: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity for the email and returns its record.
// Emails are stored and matched case-sensitively; the raw password is never
// persisted, only its salted bcrypt hash.
func (s *Store) Register(ctx context.Context, email, password string) (storage.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return storage.User{}, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return storage.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.newID()
	if err != nil {
		return storage.User{}, fmt.Errorf("generate user id: %w", err)
	}

	u := storage.User{
		ID:           userID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.PutUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return storage.User{}, ErrDuplicateEmail
		}
		return storage.User{}, fmt.Errorf("store user: %w", err)
	}
	return u, nil
}

// Login verifies the email and password pair and returns the matching record.
func (s *Store) Login(ctx context.Context, email, password string) (storage.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return storage.User{}, ErrAuthFailed
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, ErrAuthFailed
		}
		return storage.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return storage.User{}, ErrAuthFailed
	}
	return u, nil
}
