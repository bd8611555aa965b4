package transport_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/alanyang/leadflow/internal/mocks"
	"github.com/alanyang/leadflow/internal/transport"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(mw ...gin.HandlerFunc) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.Use(mw...)
	r.POST("/api/campaigns/:id/assign", func(c *gin.Context) {
		calls++
		if c.Query("fail") != "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"assigned": calls})
	})
	r.GET("/api/campaigns/:id", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{})
	})
	return r, &calls
}

func send(r *gin.Engine, method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware(t *testing.T) {
	const path = "/api/campaigns/c1/assign"
	scoped := path + "|k1"

	tests := []struct {
		name       string
		method     string
		path       string
		key        string
		setup      func(s *mocks.MockIdempotencyStore)
		wantCode   int
		wantCalls  int
		wantReplay bool
		wantBody   string
	}{
		{
			name:      "no key passes through",
			method:    http.MethodPost,
			path:      path,
			setup:     func(s *mocks.MockIdempotencyStore) {},
			wantCode:  http.StatusOK,
			wantCalls: 1,
		},
		{
			name:      "GET ignores key",
			method:    http.MethodGet,
			path:      "/api/campaigns/c1",
			key:       "k1",
			setup:     func(s *mocks.MockIdempotencyStore) {},
			wantCode:  http.StatusOK,
			wantCalls: 1,
		},
		{
			name:   "first call stores the response",
			method: http.MethodPost,
			path:   path,
			key:    "k1",
			setup: func(s *mocks.MockIdempotencyStore) {
				s.EXPECT().Check(gomock.Any(), scoped).Return(nil, false, nil)
				s.EXPECT().Store(gomock.Any(), scoped, nil, "/api/campaigns/:id/assign", []byte(`{"assigned":1}`)).Return(nil)
			},
			wantCode:  http.StatusOK,
			wantCalls: 1,
			wantBody:  `{"assigned":1}`,
		},
		{
			name:   "seen key replays without calling the handler",
			method: http.MethodPost,
			path:   path,
			key:    "k1",
			setup: func(s *mocks.MockIdempotencyStore) {
				s.EXPECT().Check(gomock.Any(), scoped).Return([]byte(`{"assigned":7}`), true, nil)
			},
			wantCode:   http.StatusOK,
			wantCalls:  0,
			wantReplay: true,
			wantBody:   `{"assigned":7}`,
		},
		{
			name:   "failed response is not stored",
			method: http.MethodPost,
			path:   path + "?fail=1",
			key:    "k1",
			setup: func(s *mocks.MockIdempotencyStore) {
				s.EXPECT().Check(gomock.Any(), scoped).Return(nil, false, nil)
			},
			wantCode:  http.StatusInternalServerError,
			wantCalls: 1,
		},
		{
			name:   "lookup error falls through to the handler",
			method: http.MethodPost,
			path:   path,
			key:    "k1",
			setup: func(s *mocks.MockIdempotencyStore) {
				s.EXPECT().Check(gomock.Any(), scoped).Return(nil, false, errors.New("db down"))
				s.EXPECT().Store(gomock.Any(), scoped, nil, gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode:  http.StatusOK,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockIdempotencyStore(gomock.NewController(t))
			tt.setup(store)
			r, calls := newEngine(transport.IdempotencyMiddleware(store))

			w := send(r, tt.method, tt.path, tt.key)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCalls, *calls)
			if tt.wantReplay {
				assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
			} else {
				assert.Empty(t, w.Header().Get("Idempotent-Replayed"))
			}
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestIdempotencyMiddleware_NilStore(t *testing.T) {
	r, calls := newEngine(transport.IdempotencyMiddleware(nil))
	w := send(r, http.MethodPost, "/api/campaigns/c1/assign", "k1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestRateLimit(t *testing.T) {
	limiter := transport.NewIPRateLimiter(rate.Limit(0.001), 2)
	r, calls := newEngine(limiter.RateLimit())

	for range 2 {
		require.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/campaigns/c1", "").Code)
	}
	w := send(r, http.MethodGet, "/api/campaigns/c1", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 2, *calls)
}

func TestCORSMiddleware(t *testing.T) {
	r, calls := newEngine(transport.CORSMiddleware())

	w := send(r, http.MethodOptions, "/api/campaigns/c1/assign", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
	assert.Zero(t, *calls)

	w = send(r, http.MethodGet, "/api/campaigns/c1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
