package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/analogalgo/letters/internal/platform/logger"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// AdminAuthenticator checks the admin password and issues tokens.
type AdminAuthenticator struct {
	passwordHash string
	verifier     PasswordVerifier
	tokens       JWTService
}

// NewAdminAuthenticator creates an authenticator for the configured bcrypt
// hash. An empty hash disables login.
func NewAdminAuthenticator(passwordHash string, verifier PasswordVerifier, tokens JWTService) *AdminAuthenticator {
	return &AdminAuthenticator{passwordHash: passwordHash, verifier: verifier, tokens: tokens}
}

// Login returns an admin token when password matches.
func (a *AdminAuthenticator) Login(ctx context.Context, password string) (*Token, error) {
	log := logger.FromContext(ctx)

	if a.passwordHash == "" {
		return nil, ErrLoginDisabled
	}
	if err := a.verifier.Compare(a.passwordHash, password); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn("admin password comparison failed", slog.String("error", err.Error()))
		}
		return nil, ErrInvalidCredentials
	}
	return a.tokens.GenerateToken(ctx, AdminSubject)
}
