// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/cbouguerba/portfolio-backend/internal/config"
	"github.com/cbouguerba/portfolio-backend/internal/http/handlers"
	"github.com/cbouguerba/portfolio-backend/internal/http/middleware"
	"github.com/cbouguerba/portfolio-backend/internal/mail"
	"github.com/cbouguerba/portfolio-backend/internal/services"
	"github.com/cbouguerba/portfolio-backend/web"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, the health and metrics endpoints, and then
// mounts the public site and API routes.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Response compression
//  7. Metrics
//  8. Global rate limiter (per client IP)
//  9. CORS and Security headers
//
// Per-route limiters (contact form, debug message listing) are attached to
// their routes rather than globally.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, notifier *mail.Notifier, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (contact submissions carry PII)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; the largest accepted form is ~2.5 KB)
	r.Use(limitBody(64 << 10))

	// 6) Compress responses (the landing page is the only sizable body)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Global token-bucket rate limiter per client IP
	global := middleware.NewRateLimiter(middleware.KeyByClientIP(),
		middleware.PerHour(cfg.Rate.GlobalHourly),
		middleware.PerDay(cfg.Rate.GlobalDaily),
	)
	r.Use(global.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Dependency injection: services ← db/notifier
	contactSvc := &services.ContactService{DB: db}
	if notifier != nil {
		contactSvc.Notifier = notifier
	}
	projectSvc := &services.ProjectService{DB: db}
	h := handlers.New(contactSvc, projectSvc, db, handlers.Options{
		Debug:       cfg.Debug,
		ServiceName: cfg.ServiceName,
	})

	// Fallbacks
	r.NoRoute(h.NotFoundPage)
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Public site
	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	contactLimit := middleware.NewRateLimiter(middleware.KeyByClientIP(),
		middleware.PerMinute(cfg.Rate.ContactPerMinute),
	)
	r.POST("/contact", contactLimit.Handler(), h.SubmitContact)

	// Public API
	api := r.Group("/api")
	{
		api.GET("/projects", h.ListProjects)

		messagesLimit := middleware.NewRateLimiter(middleware.KeyByClientIP(),
			middleware.PerHour(cfg.Rate.MessagesPerHour),
		)
		api.GET("/messages", messagesLimit.Handler(), h.ListMessages)
	}

	// API docs (off by default in production)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
