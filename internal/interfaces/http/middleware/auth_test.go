package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nafs-registration.backend/pkg/jwt"
)

func setupAuthRouter(jwtService *jwt.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(jwtService)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		role, _ := GetUserRole(c)
		registrationID, _ := GetRegistrationID(c)
		c.JSON(http.StatusOK, gin.H{"role": role, "registrationId": registrationID})
	})
	r.GET("/protected", chain...)
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(AuthorizationHeader, header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, time.Hour)
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "bursar@crescent.example.ng", "school", "REG-1")
	require.NoError(t, err)

	r := setupAuthRouter(jwtService)
	w := doAuthRequest(r, BearerPrefix+pair.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"school"`)
	assert.Contains(t, w.Body.String(), `"registrationId":"REG-1"`)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", BearerPrefix + "not-a-jwt"},
	}

	r := setupAuthRouter(jwtService)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := jwt.NewJWTService("secret", -time.Minute, -time.Minute)
	pair, err := expiredService.GenerateTokenPair(uuid.New(), "a@b.c", "admin", "")
	require.NoError(t, err)

	r := setupAuthRouter(jwt.NewJWTService("secret", time.Hour, time.Hour))
	w := doAuthRequest(r, BearerPrefix+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	otherService := jwt.NewJWTService("other-secret", time.Hour, time.Hour)
	pair, err := otherService.GenerateTokenPair(uuid.New(), "a@b.c", "admin", "")
	require.NoError(t, err)

	r := setupAuthRouter(jwt.NewJWTService("secret", time.Hour, time.Hour))
	w := doAuthRequest(r, BearerPrefix+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, time.Hour)

	schoolPair, err := jwtService.GenerateTokenPair(uuid.New(), "s@x.y", "school", "REG-1")
	require.NoError(t, err)
	adminPair, err := jwtService.GenerateTokenPair(uuid.New(), "a@x.y", "admin", "")
	require.NoError(t, err)

	r := setupAuthRouter(jwtService, RequireAdmin())

	w := doAuthRequest(r, BearerPrefix+schoolPair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doAuthRequest(r, BearerPrefix+adminPair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
