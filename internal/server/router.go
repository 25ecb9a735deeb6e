package server

import (
	"context"
	"net/http"
	"time"

	"github.com/docsession/docsession/handlers"
	"github.com/docsession/docsession/internal/config"
	"github.com/docsession/docsession/internal/document/handler"
	docservice "github.com/docsession/docsession/internal/document/service"
	"github.com/docsession/docsession/internal/sessions"
	"github.com/docsession/docsession/internal/users"
	"github.com/docsession/docsession/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// Deps is everything NewRouter wires together.
type Deps struct {
	Config    *config.Config
	Users     *users.Service
	Sessions  *sessions.Service
	Documents docservice.Service
	Cookie    middleware.SessionCookie

	// Redis backs the fixed-window rate limiter when RateLimit.UseRedis is set.
	Redis *redis.Client
	// Probes are run by /ready, keyed by dependency name.
	Probes map[string]Probe
	// Gatherer serves /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

var startTime = time.Now()

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(d.Probes))

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	handlers.RegisterSwagger(r)

	app := r.Group("/")
	app.Use(middleware.Session(d.Sessions, d.Cookie))
	if rl := d.Config.RateLimit; rl.Enabled {
		// after Session so logged-in users are limited per user
		if rl.UseRedis && d.Redis != nil {
			win := time.Duration(rl.WindowSeconds) * time.Second
			app.Use(middleware.RedisRateLimitMiddleware(d.Redis, rl.RPS, rl.Burst, win))
		} else {
			app.Use(middleware.RateLimitMiddleware(rl.RPS, rl.Burst))
		}
	}

	handlers.NewAuthHandler(d.Users, d.Sessions, d.Cookie).Register(app)

	docs := app.Group("/")
	docs.Use(middleware.RequireUser())
	handler.RegisterDocumentRoutes(docs, d.Documents)

	return r
}

// readyHandler returns 200 only when every probe succeeds.
func readyHandler(probes map[string]Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := make(map[string]bool, len(probes))
		for name, probe := range probes {
			ok := probe(ctx) == nil
			deps[name] = ok
			ready = ready && ok
		}

		uptime := time.Since(startTime).Truncate(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}
