package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return tok
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.GetString(middleware.ContextUserID),
			"employee_id": c.GetString(middleware.ContextEmployeeID),
			"role":        c.GetString(middleware.ContextRole),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id":     "u-1",
			"employee_id": "e-1",
			"role":        "EMPLOYEE",
			"typ":         "access",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":"e-1"`)
		assert.Contains(t, w.Body.String(), `"role":"EMPLOYEE"`)
	})

	t.Run("access token from cookie", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-2",
			"role":    "ADMIN",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":""`)
	})

	t.Run("expired token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-1",
			"exp":     time.Now().Add(-time.Minute).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-1",
			"typ":     "refresh",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "u-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other"))
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
	calls   []string
}

func (f *fakeRBAC) Enforce(role, resource, action string) (bool, error) {
	f.calls = append(f.calls, role+":"+resource+":"+action)
	return f.allowed, f.err
}

func newRBACRouter(svc middleware.RBACService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/leaves",
		func(c *gin.Context) {
			if role != "" {
				c.Set(middleware.ContextRole, role)
			}
			c.Next()
		},
		middleware.RBACAuthorize(svc, "leave", "approve"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)
	return r
}

func TestRBACAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		svc    *fakeRBAC
		role   string
		status int
	}{
		{"allowed", &fakeRBAC{allowed: true}, "MANAGER", http.StatusNoContent},
		{"denied", &fakeRBAC{}, "EMPLOYEE", http.StatusForbidden},
		{"no role", &fakeRBAC{allowed: true}, "", http.StatusUnauthorized},
		{"enforcer error", &fakeRBAC{err: errors.New("boom")}, "ADMIN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRBACRouter(tt.svc, tt.role).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves", nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.role != "" {
				assert.Equal(t, []string{tt.role + ":leave:approve"}, tt.svc.calls)
			}
		})
	}
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me",
		func(c *gin.Context) {
			c.Set(middleware.ContextUserID, c.GetHeader("X-User"))
			c.Next()
		},
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("u-1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u-1"))
	assert.Equal(t, http.StatusOK, call("u-2"))
	// anonymous requests are not limited
	assert.Equal(t, http.StatusOK, call(""))
	assert.Equal(t, http.StatusOK, call(""))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
