// Package testhelpers provides utilities for testing techbridge components.
package testhelpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
)

// TestJWTSecret is the signing key used by test tokens. Tests that validate
// tokens must construct their token service with the same secret.
const TestJWTSecret = "test-secret-do-not-use-in-production"

// GenerateTestJWT creates a signed HS256 token for the given subject and
// role, valid for one hour. Useful for exercising handlers through real
// auth middleware instead of mocks.
func GenerateTestJWT(userID uuid.UUID, email string, role models.AccountRole) string {
	now := time.Now()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "techbridge-test",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(TestJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// GenerateTestJWTWithBearer returns the token with "Bearer " prefix for the
// Authorization header.
func GenerateTestJWTWithBearer(userID uuid.UUID, email string, role models.AccountRole) string {
	return "Bearer " + GenerateTestJWT(userID, email, role)
}
