package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/leadflow/internal/domain/event"
	"github.com/alanyang/leadflow/internal/mocks"
	"github.com/alanyang/leadflow/internal/transport"
)

func TestNewRouter_SubscribesEveryChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := mocks.NewMockEventBus(ctrl)
	for _, ch := range event.Channels() {
		bus.EXPECT().Subscribe(gomock.Any(), ch, gomock.Any()).Return(mocks.NewMockSubscription(ctrl), nil)
	}

	mcpCalled := false
	mcp := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mcpCalled = true
		w.WriteHeader(http.StatusAccepted)
	})

	r := transport.NewRouter(context.Background(), nil, nil, nil, bus, nil, nil, mcp)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, mcpCalled)
}
