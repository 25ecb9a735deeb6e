package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docsession/docsession/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func requestFrom(addr, path string) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = addr + ":1234"
	return req
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2)) // generous rate
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestFrom("198.51.100.1", "/ok"))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, requestFrom("198.51.100.1", "/ok"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	// very low rate to force rejections
	r.Use(RateLimitMiddleware(2, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, requestFrom("198.51.100.2", "/limited"))
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, requestFrom("198.51.100.2", "/limited"))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	require.Equal(t, "1", w2.Header().Get("Retry-After"))

	// another client has its own bucket
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, requestFrom("198.51.100.3", "/limited"))
	require.Equal(t, http.StatusOK, w3.Code)

	// one token comes back after 500ms
	time.Sleep(600 * time.Millisecond)
	w4 := httptest.NewRecorder()
	r.ServeHTTP(w4, requestFrom("198.51.100.2", "/limited"))
	require.Equal(t, http.StatusOK, w4.Code)
}

func TestRateLimitMiddleware_KeysByUserWhenLoggedIn(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		uid := int64(9001)
		ctx := WithIdentity(c.Request.Context(), Identity{SessionID: "s", UserID: &uid})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, requestFrom("198.51.100.4", "/u"))
	require.Equal(t, http.StatusOK, w1.Code)

	// same user from a different address shares the bucket
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, requestFrom("198.51.100.5", "/u"))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestLimitKey(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = requestFrom("203.0.113.7", "/")
	require.Equal(t, "ip:203.0.113.7", limitKey(c))

	uid := int64(3)
	c.Request = c.Request.WithContext(WithIdentity(context.Background(), Identity{UserID: &uid}))
	require.Equal(t, "user:3", limitKey(c))
}
