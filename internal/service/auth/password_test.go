package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuthenticatorLogin(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := newTestJWTService(t, testSecret, time.Hour, time.Now)

	tests := []struct {
		name     string
		hash     string
		verifier PasswordVerifier
		password string
		wantErr  error
	}{
		{"correct password", string(hash), NewBcryptVerifier(), "correct horse", nil},
		{"wrong password", string(hash), NewBcryptVerifier(), "battery staple", ErrInvalidCredentials},
		{"login disabled", "", NewBcryptVerifier(), "correct horse", ErrLoginDisabled},
		{"malformed hash", "not-a-bcrypt-hash", NewBcryptVerifier(), "correct horse", ErrInvalidCredentials},
		{"verifier error", string(hash), verifierFunc(func(string, string) error {
			return errors.New("cost too high")
		}), "correct horse", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := NewAdminAuthenticator(tt.hash, tt.verifier, tokens)
			token, err := a.Login(context.Background(), tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, token)
				return
			}
			require.NoError(t, err)

			claims, err := tokens.ValidateToken(context.Background(), token.Value)
			require.NoError(t, err)
			assert.Equal(t, AdminSubject, claims.Subject)
		})
	}
}

func TestAdminAuthenticatorTokenFailure(t *testing.T) {
	t.Parallel()

	mock := NewMockJWTService()
	mock.TokenError = errors.New("signing failed")
	a := NewAdminAuthenticator("hash", verifierFunc(func(string, string) error { return nil }), mock)

	_, err := a.Login(context.Background(), "anything")
	assert.EqualError(t, err, "signing failed")
}

type verifierFunc func(hashedPassword, password string) error

func (f verifierFunc) Compare(hashedPassword, password string) error {
	return f(hashedPassword, password)
}
