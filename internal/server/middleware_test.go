package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/auth"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func okRouter(mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mws...)
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine, method, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/probe", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMetricsMiddleware(t *testing.T) {
	w := doRequest(okRouter(MetricsMiddleware()), http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggingMiddleware(t *testing.T) {
	w := doRequest(okRouter(RequestLoggingMiddleware()), http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := okRouter(RateLimitMiddleware(2, 5))

	// All three fit within the burst.
	for i := 0; i < 3; i++ {
		w := doRequest(r, http.MethodGet, "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddlewareBlocks(t *testing.T) {
	r := okRouter(RateLimitMiddleware(1, 1))

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodGet, "").Code)
}

func TestCorsMiddleware(t *testing.T) {
	r := okRouter(corsMiddleware())

	w := doRequest(r, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	// Preflight never reaches a handler.
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodOptions, "").Code)
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	r := okRouter(auth.AuthMiddleware(secret))

	t.Run("ValidToken", func(t *testing.T) {
		token, _, err := auth.GenerateTokens(1, "member@example.com", auth.RoleMember, secret, secret)
		assert.NoError(t, err)

		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, token).Code)
	})

	t.Run("MissingToken", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "").Code)
	})
}

func TestRequireRole(t *testing.T) {
	const secret = "test-secret"

	r := okRouter(auth.AuthMiddleware(secret), auth.RequireRole(auth.RoleAdmin))

	t.Run("Admin", func(t *testing.T) {
		token, _, err := auth.GenerateTokens(1, "admin@example.com", auth.RoleAdmin, secret, secret)
		assert.NoError(t, err)

		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, token).Code)
	})

	t.Run("NonAdmin", func(t *testing.T) {
		token, _, err := auth.GenerateTokens(1, "member@example.com", auth.RoleMember, secret, secret)
		assert.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, token).Code)
	})
}
