package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kgtransfer/config"
	"kgtransfer/internal/auth"
	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jwtCfg = &config.JWTConfig{
	AccessSecret:  "access",
	RefreshSecret: "refresh",
	AccessExpiry:  time.Minute,
	RefreshExpiry: time.Hour,
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthRequired(jwtCfg), AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": GetAdminID(c)})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	r := protectedRouter()
	admin, err := auth.GenerateAccessToken(jwtCfg, 5, "a@example.com", domain.RoleAdmin)
	require.NoError(t, err)
	editor, err := auth.GenerateAccessToken(jwtCfg, 6, "e@example.com", "EDITOR")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"not admin", "Bearer " + editor, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
		{"lowercase scheme", "bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"admin_id":5}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewInMemoryRateLimiter(2, time.Minute)
	defer limiter.Stop()
	r := gin.New()
	r.POST("/form", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/form", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	// Another client has its own budget.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/form", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPrune(t *testing.T) {
	now := time.Now()
	times := []time.Time{now.Add(-3 * time.Minute), now.Add(-2 * time.Minute), now.Add(-10 * time.Second)}
	assert.Len(t, prune(times, now.Add(-time.Minute)), 1)
	assert.Empty(t, prune(nil, now))
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(false), CORS([]string{"https://site.example"}), RequestLogger(logger.Nop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://site.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
