package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/leadflow/internal/domain/event"
	porteventbus "github.com/alanyang/leadflow/internal/port/eventbus"
	portidem "github.com/alanyang/leadflow/internal/port/idempotency"
	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
	"github.com/alanyang/leadflow/internal/service/distribution"
	sendersvc "github.com/alanyang/leadflow/internal/service/sender"

	campaignhandler "github.com/alanyang/leadflow/internal/transport/campaign"
	senderhandler "github.com/alanyang/leadflow/internal/transport/sender"
	wshandler "github.com/alanyang/leadflow/internal/transport/ws"
)

// NewRouter builds the HTTP surface. limiter and mcpHandler may be nil.
func NewRouter(
	ctx context.Context,
	campaignSvc *campaignsvc.Service,
	distSvc *distribution.Service,
	senderSvc *sendersvc.Service,
	eventBus porteventbus.EventBus,
	idemStore portidem.Store,
	limiter *IPRateLimiter,
	mcpHandler http.Handler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	if err := RegisterValidators(); err != nil {
		slog.Error("failed to register request validators", "error", err)
	}

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())
	if limiter != nil {
		r.Use(limiter.RateLimit())
	}
	r.Use(IdempotencyMiddleware(idemStore))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	campaignhandler.Register(api.Group("/campaigns"), campaignSvc, distSvc)
	senderhandler.Register(api.Group("/senders"), senderSvc)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	// One LISTEN connection per domain channel; clients filter on event.Type
	// and campaign_id.
	for _, ch := range event.Channels() {
		if _, err := eventBus.Subscribe(ctx, ch, func(_ context.Context, e event.Event) {
			hub.Broadcast(e)
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", ch, "error", err)
		}
	}

	if mcpHandler != nil {
		r.Any("/mcp", gin.WrapH(mcpHandler))
	}

	return r
}
