package token

import (
	"errors"
	"fmt"
)

// Sentinel errors for token operations.
var (
	ErrMissingSecret    = errors.New("token: signing secret is required")
	ErrTokenMalformed   = errors.New("token: token malformed")
	ErrTokenExpired     = errors.New("token: token expired")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrInvalidClaims    = errors.New("token: invalid claims")
)

// Helper to format errors
func wrapTokenError(err error) error {
	return fmt.Errorf("token: %w", err)
}
