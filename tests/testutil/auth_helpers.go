package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vtech-solutions/garage-api/middleware"
	"github.com/vtech-solutions/garage-api/models"
	"github.com/vtech-solutions/garage-api/services"
)

// TestJWTSecret is the signing secret used by all tests
const TestJWTSecret = "test-jwt-secret"

// MintToken signs a real token for the given user, the same way the
// login endpoint does
func MintToken(t *testing.T, userID uint, name, role string) string {
	t.Helper()

	authService := services.NewAuthService(nil, TestJWTSecret)
	token, err := authService.IssueToken(&models.User{
		ID:   userID,
		Name: name,
		Role: role,
	})
	if err != nil {
		t.Fatalf("Failed to mint test token: %v", err)
	}
	return token
}

// MockAuthMiddleware stores a decoded identity in the Gin context the
// same way middleware.RequireAuth does, without requiring a token
func MockAuthMiddleware(userID, name, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &services.TokenClaims{
			Name: name,
			Role: role,
		}
		claims.Subject = userID
		middleware.SetIdentity(c, claims)
		c.Next()
	}
}
