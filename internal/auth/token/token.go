// Package token issues and verifies signed, time-bounded identity assertions.
package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

const issuerName = "taskboard"

var (
	// ErrInvalid indicates a malformed token or a signature mismatch.
	ErrInvalid = apperrors.New(apperrors.CodeTokenInvalid, "Invalid token")
	// ErrExpired indicates a structurally valid token past its expiry.
	ErrExpired = apperrors.New(apperrors.CodeTokenExpired, "Invalid token")
)

// claims is the JWT payload binding a user id to an expiry.
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Issuer signs and verifies identity tokens with a process-wide symmetric key.
// The key is loaded once at startup and must never be logged.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer with the default 7-day token lifetime.
func NewIssuer(secret []byte) (*Issuer, error) {
	return NewIssuerWithOptions(secret, DefaultTTL, time.Now)
}

// NewIssuerWithOptions creates an issuer with explicit lifetime and clock.
func NewIssuerWithOptions(secret []byte, ttl time.Duration, now func() time.Time) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Issuer{secret: secret, ttl: ttl, now: now}, nil
}

// Issue produces a signed assertion binding userID to an absolute expiry.
func (i *Issuer) Issue(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}

	issuedAt := i.now().UTC()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
		UserID: userID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Verification is stateless: there is no server-side session table, so a
// token cannot be revoked before its expiry.
func (i *Issuer) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", ErrInvalid
	}

	if parsed.ExpiresAt == nil {
		return "", ErrInvalid
	}
	if !parsed.ExpiresAt.Time.UTC().After(i.now().UTC()) {
		return "", ErrExpired
	}

	userID := strings.TrimSpace(parsed.UserID)
	if userID == "" {
		return "", ErrInvalid
	}
	return userID, nil
}
