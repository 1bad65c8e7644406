package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redisStore "paypal-multiparty/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(t *testing.T, limit int64) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redisStore.NewRateLimitStore(client)

	r := gin.New()
	rule := RateLimitRule{Limit: limit, Window: time.Minute}
	r.GET("/orders", RateLimiter(store, "orders", rule, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	r, _ := setupRateLimitRouter(t, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r, _ := setupRateLimitRouter(t, 2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		r.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "RATE_001")
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	r, _ := setupRateLimitRouter(t, 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimiter_DegradesOpenOnStoreFailure(t *testing.T) {
	r, mr := setupRateLimitRouter(t, 1)
	mr.Close()

	// With Redis down every request passes through.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_KeysByOrg(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redisStore.NewRateLimitStore(client)

	r := gin.New()
	rule := RateLimitRule{Limit: 1, Window: time.Minute}
	r.GET("/orders", func(c *gin.Context) {
		c.Set(CtxOrgID, c.GetHeader("X-Test-Org"))
		c.Next()
	}, RateLimiter(store, "orders", rule, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Exhaust org_1's window.
	w1 := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req1.Header.Set("X-Test-Org", "org_1")
	r.ServeHTTP(w1, req1)
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req2.Header.Set("X-Test-Org", "org_1")
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)

	// A different tenant still has its own budget.
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req3.Header.Set("X-Test-Org", "org_2")
	r.ServeHTTP(w3, req3)
	assert.Equal(t, http.StatusOK, w3.Code)
}
