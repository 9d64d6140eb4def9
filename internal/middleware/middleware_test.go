package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clima-be/internal/apperrors"
	"clima-be/internal/jwt"
	"clima-be/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	other := jwt.NewJWTService("other-secret", time.Hour)

	r := gin.New()
	r.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetUint(ContextUserID), "email": c.GetString(ContextEmail)})
	})

	valid, err := svc.GenerateToken(7, "ana@example.com")
	require.NoError(t, err)
	forged, err := other.GenerateToken(7, "ana@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusForbidden, msgTokenRequired},
		{"wrong scheme", "Basic abc", http.StatusForbidden, msgTokenRequired},
		{"empty bearer", "Bearer ", http.StatusForbidden, msgTokenRequired},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, msgTokenInvalid},
		{"wrong signature", "Bearer " + forged, http.StatusUnauthorized, msgTokenInvalid},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)

			var body map[string]any
			decode(t, w, &body)
			if tt.message != "" {
				assert.Equal(t, tt.message, body["error"])
				return
			}
			assert.EqualValues(t, 7, body["userId"])
			assert.Equal(t, "ana@example.com", body["email"])
		})
	}
}

func TestErrorHandler_Envelope(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logging.Discard(), false))
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperrors.Conflict(apperrors.MsgDuplicateValue, apperrors.Details{"target": "email"}))
	})
	r.NoRoute(NotFound())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "CONFLICT", resp.Code)
	assert.Equal(t, apperrors.MsgDuplicateValue, resp.Message)
	assert.Equal(t, "/conflict", resp.Path)
	assert.Equal(t, http.MethodGet, resp.Method)
	assert.Equal(t, "email", resp.Details["target"])
	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, apperrors.MsgRouteNotFound, resp.Message)
	assert.Equal(t, http.MethodPost, resp.Method)
}

func TestErrorHandler_HidesInternalsInProduction(t *testing.T) {
	handler := func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation \"users\" does not exist somewhere deep"))
	}

	dev := gin.New()
	dev.Use(ErrorHandler(logging.Discard(), false))
	dev.GET("/", handler)

	prod := gin.New()
	prod.Use(ErrorHandler(logging.Discard(), true))
	prod.GET("/", handler)

	var resp ErrorResponse
	w := serve(dev, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	decode(t, w, &resp)
	assert.Contains(t, resp.Message, "does not exist")

	w = serve(prod, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp = ErrorResponse{}
	decode(t, w, &resp)
	assert.Equal(t, apperrors.MsgInternal, resp.Message)
	assert.Nil(t, resp.Details)
}

func TestErrorHandler_LeavesWrittenResponsesAlone(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logging.Discard(), false))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": false})
		_ = c.Error(errors.New("already answered"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logging.Discard()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://app.test"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://app.test")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	open := gin.New()
	open.Use(CORS([]string{"*"}))
	open.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = serve(open, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()
	defer rl.Stop()

	r := gin.New()
	r.Use(ErrorHandler(logging.Discard(), false))
	r.GET("/", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "TOO_MANY_REQUESTS", resp.Code)

	// Another client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	rl.getVisitor("1.2.3.4")
	rl.mu.Lock()
	rl.visitors["1.2.3.4"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()
	rl.getVisitor("5.6.7.8")

	rl.evictIdle(10 * time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "1.2.3.4")
	assert.Contains(t, rl.visitors, "5.6.7.8")
}
