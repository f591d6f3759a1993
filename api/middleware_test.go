package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/metroticket/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type stubValidator struct {
	claims *auth.Claims
	err    error
	seen   string
}

func (s *stubValidator) Validate(token string) (*auth.Claims, error) {
	s.seen = token
	return s.claims, s.err
}

func sessionRouter(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireSession(v), func(c *gin.Context) {
		c.String(http.StatusOK, currentUserID(c))
	})
	return r
}

func TestRequireSession(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		err    error
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"invalid token", "Bearer broken", errors.New("bad"), http.StatusUnauthorized},
		{"valid token", "Bearer good-token", nil, http.StatusOK},
		{"lowercase scheme", "bearer good-token", nil, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := &stubValidator{claims: &auth.Claims{UserID: "demo123"}, err: tc.err}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			sessionRouter(v).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "demo123", w.Body.String())
				assert.Equal(t, "good-token", v.seen)
			}
		})
	}
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("5-1m")
	require.NoError(t, err)
	assert.Equal(t, int64(5), rate.Limit)
	assert.Equal(t, time.Minute, rate.Period)

	rate, err = ParseRate("100-30s")
	require.NoError(t, err)
	assert.Equal(t, int64(100), rate.Limit)
	assert.Equal(t, 30*time.Second, rate.Period)

	rate, err = ParseRate("2-1h")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, rate.Period)

	for _, bad := range []string{"", "5", "x-1m", "0-1m", "5-m", "5-1d", "5-0s", "5-1m-2"} {
		_, err := ParseRate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewRateLimiter(t *testing.T) {
	limit, err := NewRateLimiter("2-1m", memory.NewStore())
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", limit, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_BadRate(t *testing.T) {
	_, err := NewRateLimiter("lots", memory.NewStore())
	assert.Error(t, err)
}
