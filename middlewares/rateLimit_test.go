package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func setupLimitedRouter(r rate.Limit, b int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	keyFunc := func(c *gin.Context) string { return c.GetHeader("X-Client") }
	router.POST("/limited", RateLimitMiddleware(r, b, keyFunc), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func post(router *gin.Engine, client string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/limited", nil)
	req.Header.Set("X-Client", client)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	// one token per minute so the bucket cannot refill during the test
	router := setupLimitedRouter(rate.Every(time.Minute), 2)

	assert.Equal(t, http.StatusCreated, post(router, "a"))
	assert.Equal(t, http.StatusCreated, post(router, "a"))
	assert.Equal(t, http.StatusTooManyRequests, post(router, "a"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusCreated, post(router, "b"))
}

func TestRateLimitMiddlewareDisabled(t *testing.T) {
	router := setupLimitedRouter(0, 0)

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusCreated, post(router, "a"))
	}
}
