package di

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"dealtown/api"
	"dealtown/config"
	"dealtown/dao/fixture"
	"dealtown/dao/postgres"
	"dealtown/dao/redis"
	"dealtown/db"
	"dealtown/filter"
	"dealtown/mailer"
	"dealtown/server"
	"dealtown/server/handlers"
	services "dealtown/service"
)

// REDIS_IN_MEMORY selects the in-process Redis stand-in instead of a server.
const REDIS_IN_MEMORY = "memory"

// Container holds all application dependencies.
type Container struct {
	Config                 *config.Config
	Log                    *zap.Logger
	RedisClient            db.RedisClient
	PostgresDB             *sql.DB
	ListingSource          services.ListingSource
	RedisVenueDao          *redis.RedisVenueDAO
	VenueService           *services.VenueService
	ListingService         *services.ListingService
	SubmissionService      *services.SubmissionService
	AnalyticsService       *services.AnalyticsService
	VenuesRefresherService *services.VenuesRefresherService
	Mailer                 mailer.Mailer
	MuxRouter              *mux.Router
	Router                 *server.Router
	DealtownHttpServer     *server.DealtownHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies. Production reads
// listings and stores submissions in Postgres; other environments use the
// JSON fixtures under resources/ and an in-memory submission store.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	log.Info("initializing container", zap.String("env", cfg.App.Env))
	c := &Container{Config: cfg, Log: log}

	loc, err := filter.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, err
	}
	clientIPs, err := handlers.NewClientIPResolver(cfg.App.TrustedProxies)
	if err != nil {
		return nil, err
	}

	redisClient, err := c.newRedisClient(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.RedisClient = redisClient

	var store services.SubmissionStore
	if cfg.App.IsProd() {
		pg, err := db.NewPostgresDB(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MaxConnections, cfg.Postgres.MaxIdle, log)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.PostgresDB = pg
		c.closers = append(c.closers, pg.Close)
		c.ListingSource = postgres.NewListingDAO(pg, log)
		store = postgres.NewSubmissionDAO(pg)
		log.Info("using postgres listing source")
	} else {
		c.ListingSource = fixture.NewListingSource(cfg.App.ResourcesPath)
		store = fixture.NewSubmissionStore()
		log.Info("using fixture listing source", zap.String("resources", cfg.App.ResourcesPath))
	}

	c.Mailer, err = newMailer(ctx, cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.RedisVenueDao = redis.NewRedisVenueDAO(redisClient, log)
	c.VenueService = services.NewVenueService(c.RedisVenueDao, c.ListingSource, log)
	c.ListingService = services.NewListingService(c.ListingSource, c.VenueService, loc, filter.SystemClock{}, log)
	c.SubmissionService = services.NewSubmissionService(store, redis.NewRedisThrottleDAO(redisClient, log), c.Mailer,
		services.SubmissionConfig{
			AdminEmail:     cfg.Mail.AdminEmail,
			ThrottleLimit:  cfg.Submissions.ThrottleLimit,
			ThrottleWindow: cfg.Submissions.ThrottleWindow(),
		}, log)
	c.AnalyticsService = services.NewAnalyticsService(redis.NewRedisAnalyticsDAO(redisClient), loc)
	c.VenuesRefresherService = services.NewVenuesRefresherService(c.RedisVenueDao, c.ListingSource, log)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(
		handlers.NewVenueHandler(c.VenueService, log),
		handlers.NewListingHandler(c.ListingService, cfg.App.GeolocationTimeout(), log),
		handlers.NewSubmissionHandler(c.SubmissionService, clientIPs, log),
		handlers.NewAnalyticsHandler(c.AnalyticsService, log),
		handlers.NewAdminHandler(c.VenuesRefresherService, c.VenueService, c.ListingService, log),
		c.MuxRouter,
		server.RouterOptions{
			AdminAPIKey:             cfg.App.AdminAPIKey,
			PublicRequestsPerSecond: cfg.App.PublicRequestsPerSecond,
			AdminRequestsPerMinute:  cfg.App.AdminRequestsPerMinute,
		},
		log)
	c.DealtownHttpServer = server.NewDealtownHttpServer(c.Router, c.MuxRouter, cfg.App.Port, cfg.App.ShutdownTimeout(), log)

	return c, nil
}

func (c *Container) newRedisClient(ctx context.Context) (db.RedisClient, error) {
	if c.Config.Redis.Address == REDIS_IN_MEMORY {
		c.Log.Warn("using in-memory redis; cache and throttles are not shared")
		return db.NewMockRedisClient(), nil
	}

	internal := goredis.NewClient(&goredis.Options{
		Addr:     c.Config.Redis.Address,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	c.closers = append(c.closers, internal.Close)

	client := db.NewGeoRedisClient(internal, c.Log)
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", c.Config.Redis.Address, err)
	}
	return client, nil
}

func newMailer(ctx context.Context, cfg *config.Config, log *zap.Logger) (mailer.Mailer, error) {
	switch cfg.Mail.Provider {
	case "ses":
		m, err := mailer.NewSESMailer(ctx, cfg.Mail.SESRegion, cfg.Mail.From)
		if err != nil {
			return nil, fmt.Errorf("failed to create ses mailer: %w", err)
		}
		return m, nil
	case "http":
		client := api.NewHTTPClient(cfg.Mail.HTTPBaseURL, cfg.App.UpstreamTimeout())
		return mailer.NewHTTPMailer(client, cfg.Mail.HTTPAPIKey, cfg.Mail.From), nil
	default:
		return mailer.NewLogMailer(log), nil
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Log.Warn("error closing resource", zap.Error(err))
		}
	}
	c.closers = nil
}
