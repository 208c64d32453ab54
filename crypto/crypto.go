// Package crypto hashes and verifies admin passwords.
package crypto

import (
	"context"
	"fmt"

	"github.com/lapisvisuals/lapis/logging/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used when none is given.
	DefaultCost = bcrypt.DefaultCost
	// MinCost is the cheapest cost bcrypt accepts. Tests use it.
	MinCost = bcrypt.MinCost
)

// HashPassword hashes password using bcrypt at cost. A cost outside
// bcrypt's range falls back to DefaultCost.
func HashPassword(ctx context.Context, password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		logger.Errorf(ctx, "crypto.HashPassword error: %v", err)
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword compares the hashed password with the provided password.
func ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
