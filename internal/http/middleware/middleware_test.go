package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens map[string]int64

func (s stubTokens) ParseAccess(token string) (int64, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(), Recovery())
	return r
}

func echoUserID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(ContextUserIDKey)})
}

func TestIdentityMiddleware(t *testing.T) {
	tokens := stubTokens{"good": 7}

	tests := []struct {
		name        string
		trustHeader bool
		headers     map[string]string
		wantStatus  int
		wantBody    string
	}{
		{"header user", true, map[string]string{UserHeader: "1"}, http.StatusOK, `{"user_id":1}`},
		{"header trimmed", true, map[string]string{UserHeader: " 3 "}, http.StatusOK, `{"user_id":3}`},
		{"missing header", true, nil, http.StatusBadRequest, `{"error":"Missing or invalid X-User-Id header"}`},
		{"non-numeric header", true, map[string]string{UserHeader: "abc"}, http.StatusBadRequest, `{"error":"Missing or invalid X-User-Id header"}`},
		{"zero header", true, map[string]string{UserHeader: "0"}, http.StatusBadRequest, `{"error":"Missing or invalid X-User-Id header"}`},
		{"bearer token", false, map[string]string{"Authorization": "Bearer good"}, http.StatusOK, `{"user_id":7}`},
		{"bearer wins over header", true, map[string]string{"Authorization": "Bearer good", UserHeader: "1"}, http.StatusOK, `{"user_id":7}`},
		{"invalid token", true, map[string]string{"Authorization": "Bearer bad"}, http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"wrong scheme", true, map[string]string{"Authorization": "Basic Zm9v"}, http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"header not trusted", false, map[string]string{UserHeader: "1"}, http.StatusUnauthorized, `{"error":"authorization required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine()
			r.GET("/me", IdentityMiddleware(tokens, tt.trustHeader), echoUserID)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestPositiveIDParam(t *testing.T) {
	r := newEngine()
	r.DELETE("/coins/:id", PositiveIDParam("id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetInt64(ContextFavoriteIDKey)})
	})

	for _, raw := range []string{"abc", "0", "-4", "1.5"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/coins/"+raw, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		assert.JSONEq(t, `{"error":"invalid favourite id"}`, w.Body.String())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/coins/12", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":12}`, w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", apperror.ErrFavoriteNotFound, http.StatusNotFound, `{"error":"Favourite not found"}`},
		{"conflict", apperror.ErrFavoriteExists, http.StatusConflict, `{"error":"Coin already in favourites"}`},
		{"upstream unavailable", apperror.New(apperror.ErrCodeUpstreamUnavailable, "Error connecting to external crypto API: refused"), http.StatusServiceUnavailable, `{"error":"Error connecting to external crypto API: refused"}`},
		{"bad gateway", apperror.ErrExternalInvalidJSON, http.StatusBadGateway, `{"error":"External crypto API returned invalid JSON"}`},
		{"database masked", apperror.Wrap(errors.New("disk I/O error"), apperror.ErrCodeDatabaseError, "failed to add favourite"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"plain error masked", errors.New("sql: connection is already closed"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine()
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
		c.Writer.WriteHeaderNow()
		_ = c.Error(errors.New("late error"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine()
	r.GET("/", RateLimitMiddleware(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/coins", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/coins", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", UserHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/coins", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
