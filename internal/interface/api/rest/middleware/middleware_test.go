package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"userinfo-service/internal/infrastructure/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j := jwt.New("secret")
	valid, err := j.GenerateJWT("admin", "ROLE_ADMIN", time.Minute)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/p", AuthMiddleware(j), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxSubject)+"|"+c.GetString(CtxAuthorities))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing Authorization header"},
		{"no bearer prefix", valid, http.StatusUnauthorized, "invalid token format"},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, "admin|ROLE_ADMIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestLogGin_KeepsBodyAndCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counter"}, []string{"result"})

	r := gin.New()
	r.Use(RequestLogGin(zap.NewNop(), counter))
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	big := strings.Repeat("x", maxLogBodySize+10)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(big))
	req.Header.Set(HeaderRequestID, "rid-1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, big, rr.Body.String())
	assert.Equal(t, "rid-1", rr.Header().Get(HeaderRequestID))
	assert.Equal(t, float64(1), testutil.ToFloat64(counter.WithLabelValues("app_requests_total")))
}

func TestRequestLogGin_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogGin(zap.NewNop(), nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
}
