package main

import (
	"context"
	"fmt"
	"time"

	"github.com/docsession/docsession/internal/config"
	"github.com/docsession/docsession/internal/database"
	"github.com/docsession/docsession/internal/document/repository"
	docservice "github.com/docsession/docsession/internal/document/service"
	"github.com/docsession/docsession/internal/server"
	"github.com/docsession/docsession/internal/sessions"
	"github.com/docsession/docsession/internal/tokens"
	"github.com/docsession/docsession/internal/users"
	"github.com/docsession/docsession/pkg/logger"
	"github.com/docsession/docsession/pkg/metrics"
	"github.com/docsession/docsession/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("failed to migrate database: %v", err)
	}

	probes := map[string]server.Probe{"database": db.PingContext}

	// Connect to Redis early so both the session store and the rate limiter can use it
	var rdb *redis.Client
	var redisSessions *sessions.RedisRepository
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		redisSessions = sessions.NewRedisRepository(rdb, "session:")
		if err := redisSessions.Ping(ctx); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		}
		probes["redis"] = redisSessions.Ping
	}

	var sessRepo sessions.Repository
	switch cfg.Session.Store {
	case "redis":
		if rdb == nil {
			logger.Fatalf("SESSION_STORE=redis requires REDIS_HOST")
		}
		sessRepo = redisSessions
	case "mongo":
		if cfg.MongoDB.URI == "" {
			logger.Fatalf("SESSION_STORE=mongo requires MONGODB_URI")
		}
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		repo, err := sessions.NewMongoRepository(ctx, client.Database(cfg.MongoDB.Database).Collection("sessions"))
		if err != nil {
			logger.Fatalf("failed to prepare session collection: %v", err)
		}
		sessRepo = repo
		probes["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	case "memory", "":
		sessRepo = sessions.NewMemoryRepository()
	default:
		logger.Fatalf("unknown SESSION_STORE %q (want memory, redis or mongo)", cfg.Session.Store)
	}
	sessSvc := sessions.NewService(sessRepo, cfg.Session.TTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	router := server.NewRouter(server.Deps{
		Config:    cfg,
		Users:     users.NewService(users.NewSQLiteRepository(db)),
		Sessions:  sessSvc,
		Documents: docservice.New(repository.NewSQLiteRepo(db)),
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			TTL:    sessSvc.TTL(),
			Signer: tokens.NewSigner(cfg.Session.Secret),
		},
		Redis:    rdb,
		Probes:   probes,
		Gatherer: reg,
	})

	logger.Infof("config summary: db=%s session_store=%s ttl=%s redis=%v rate_limit=%v",
		cfg.Database.Path, cfg.Session.Store, sessSvc.TTL().Round(time.Minute), rdb != nil, cfg.RateLimit.Enabled)

	srv := server.NewHTTPServer(cfg, router)
	if err := server.Run(srv); err != nil {
		logger.Fatalf("server failed: %v", fmt.Errorf("listen on %s: %w", srv.Addr, err))
	}
}
