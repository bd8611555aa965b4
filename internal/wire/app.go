package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/alanyang/leadflow/internal/adapter/memory"
	pgdb "github.com/alanyang/leadflow/internal/adapter/postgres"
	pgcampaign "github.com/alanyang/leadflow/internal/adapter/postgres/campaign"
	pgeventbus "github.com/alanyang/leadflow/internal/adapter/postgres/eventbus"
	pgidempotency "github.com/alanyang/leadflow/internal/adapter/postgres/idempotency"
	pglead "github.com/alanyang/leadflow/internal/adapter/postgres/lead"
	pglocker "github.com/alanyang/leadflow/internal/adapter/postgres/locker"
	pgsender "github.com/alanyang/leadflow/internal/adapter/postgres/sender"
	rediscache "github.com/alanyang/leadflow/internal/adapter/redis"
	"github.com/alanyang/leadflow/internal/config"
	portcache "github.com/alanyang/leadflow/internal/port/cache"

	campaignsvc "github.com/alanyang/leadflow/internal/service/campaign"
	"github.com/alanyang/leadflow/internal/service/distribution"
	sendersvc "github.com/alanyang/leadflow/internal/service/sender"

	"github.com/alanyang/leadflow/internal/transport"
	mcptransport "github.com/alanyang/leadflow/internal/transport/mcp"
)

// Core holds the storage adapters and services shared by every binary.
type Core struct {
	Pool       *pgxpool.Pool
	Redis      *goredis.Client // nil when REDIS_URL is unset
	EventBus   *pgeventbus.EventBus
	Registry   *mcptransport.SessionRegistry
	Operations *pgidempotency.Repository

	DistSvc     *distribution.Service
	CampaignSvc *campaignsvc.Service
	SenderSvc   *sendersvc.Service
}

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	*Core
	Server    *http.Server
	MCPServer *mcptransport.Server
}

// BuildCore is the composition root for adapters and services. appName tags
// the database connections of the calling binary.
func BuildCore(ctx context.Context, cfg *config.Config, appName string) (*Core, error) {
	// ── Database ─────────────────────────────────────────────────────────────
	pool, err := pgdb.Connect(ctx, cfg.DatabaseURL, appName, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := pgdb.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	// ── Cache ────────────────────────────────────────────────────────────────
	var (
		redisClient *goredis.Client
		cache       portcache.Cache
	)
	if cfg.RedisURL != "" {
		redisClient, err = rediscache.Dial(ctx, cfg.RedisURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		cache = rediscache.New(redisClient)
	} else {
		slog.Warn("REDIS_URL not set; status cache is process-local")
		cache = memory.NewCache()
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	senderRepo := pgsender.New(pool)
	leadRepo := pglead.New(pool)
	campaignRepo := pgcampaign.New(pool)
	eventBus := pgeventbus.New(pool)
	locker := pglocker.New(pool)
	operations := pgidempotency.New(pool)

	// ── Services ─────────────────────────────────────────────────────────────
	reg := mcptransport.NewSessionRegistry()

	distSvc := distribution.NewService(
		senderRepo,
		leadRepo,
		campaignRepo,
		eventBus,
		reg, // implements port/notifier.SenderNotifier
		locker,
		cache,
		cfg.StatusCacheTTL,
	)
	campaignSvcInstance := campaignsvc.NewService(campaignRepo, leadRepo, senderRepo, distSvc, eventBus)
	senderSvcInstance := sendersvc.NewService(senderRepo, eventBus)

	return &Core{
		Pool:        pool,
		Redis:       redisClient,
		EventBus:    eventBus,
		Registry:    reg,
		Operations:  operations,
		DistSvc:     distSvc,
		CampaignSvc: campaignSvcInstance,
		SenderSvc:   senderSvcInstance,
	}, nil
}

// Close releases the event bus listeners, the Redis client and the pool.
func (c *Core) Close() {
	c.EventBus.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error("closing redis client", "error", err)
		}
	}
	c.Pool.Close()
}

// Build wires the HTTP + MCP server on top of the core services.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	core, err := BuildCore(ctx, cfg, "leadflow-server")
	if err != nil {
		return nil, err
	}

	mcpServer := mcptransport.New(core.Registry, core.DistSvc, core.SenderSvc, core.CampaignSvc)

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(
		ctx,
		core.CampaignSvc,
		core.DistSvc,
		core.SenderSvc,
		core.EventBus,
		core.Operations,
		transport.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		mcpServer.Handler(),
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	slog.Info("application wired", "port", cfg.Port, "redis", core.Redis != nil)

	return &App{
		Core:      core,
		Server:    server,
		MCPServer: mcpServer,
	}, nil
}
