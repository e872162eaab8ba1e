package auth

import (
	"context"
	"time"
)

// MockJWTService is a mock implementation of the JWTService interface for testing.
type MockJWTService struct {
	// Function fields for custom behaviors
	GenerateTokenFunc func(ctx context.Context, subject string) (*Token, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Fixed fields for simple cases
	Token           string  // Default token value to return
	TokenError      error   // Default error for token generation
	ValidationError error   // Default error for token validation
	Claims          *Claims // Default claims to return
}

var _ JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a new mock JWT service that issues and accepts
// "mock-jwt-token" for the admin subject.
func NewMockJWTService() *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token: "mock-jwt-token",
		Claims: &Claims{
			Subject:   AdminSubject,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        "mock-token-id",
		},
	}
}

// GenerateToken implements the JWTService.GenerateToken method.
func (m *MockJWTService) GenerateToken(ctx context.Context, subject string) (*Token, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, subject)
	}
	if m.TokenError != nil {
		return nil, m.TokenError
	}
	return &Token{Value: m.Token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ValidateToken implements the JWTService.ValidateToken method.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	if tokenString != m.Token {
		return nil, ErrInvalidToken
	}
	return m.Claims, nil
}
