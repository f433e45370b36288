package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vtech-solutions/garage-api/config"
	"github.com/vtech-solutions/garage-api/models"
	"github.com/vtech-solutions/garage-api/services"
)

const testSecret = "test-jwt-secret"

func setupAuthTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(cfg), func(c *gin.Context) {
		claims, err := GetIdentity(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"role":    claims.Role,
		})
	})
	router.GET("/admin", RequireAuth(cfg), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func mintToken(t *testing.T, role string) string {
	t.Helper()

	authService := services.NewAuthService(nil, testSecret)
	token, err := authService.IssueToken(&models.User{ID: 1, Name: "A", Role: role})
	if err != nil {
		t.Fatalf("Failed to mint token: %v", err)
	}
	return token
}

func mintExpiredToken(t *testing.T) string {
	t.Helper()

	claims := services.TokenClaims{
		Name: "A",
		Role: "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to mint expired token: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret, GoEnv: "test"}
	router := setupAuthTestRouter(cfg)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Valid token",
			header:         "Bearer " + mintToken(t, "staff"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "NO_TOKEN",
		},
		{
			name:           "Not a bearer token",
			header:         "Basic abc123",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "NO_TOKEN",
		},
		{
			name:           "Malformed token",
			header:         "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:           "Expired token",
			header:         "Bearer " + mintExpiredToken(t),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedCode != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errorData["code"])
			} else {
				assert.True(t, response["success"].(bool))
				assert.Equal(t, "staff", response["role"])
			}
		})
	}
}

func TestRequireAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "a-different-secret", GoEnv: "test"}
	router := setupAuthTestRouter(cfg)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "staff"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret, GoEnv: "test"}
	router := setupAuthTestRouter(cfg)

	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{"Admin allowed", "admin", http.StatusOK},
		{"Staff forbidden", "staff", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+mintToken(t, tt.role))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusForbidden {
				var response map[string]interface{}
				json.Unmarshal(w.Body.Bytes(), &response)
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, "FORBIDDEN", errorData["code"])
			}
		})
	}
}

func TestGetIdentityMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetIdentity(c)
	assert.Error(t, err)

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "MISSING_IDENTITY", authErr.Code)
}
