package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

type Config struct {
	// AllowedOrigins is a comma separated origin list; "*" allows any origin.
	AllowedOrigins string
	// Gatherer backs /metrics; the endpoint is not registered when nil.
	Gatherer prometheus.Gatherer
	// RateLimitRPS limits POST /api/messages per client IP; 0 disables the limit.
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	app *fiber.App
}

func New(cfg Config, a Assistant) *Server {
	app := fiber.New(fiber.Config{
		AppName:               ServiceName,
		BodyLimit:             64 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    requestIDHeader,
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(cfg.AllowedOrigins),
		AllowHeaders:  "Origin, Content-Type, Accept, " + requestIDHeader,
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: requestIDHeader,
	}))
	app.Use(accessLog)

	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	h := &handler{assistant: a}
	if cfg.RateLimitRPS > 0 {
		h.limit = newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler
	}
	h.RegisterRoutes(app.Group("/api"))

	return &Server{app: app}
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	logx.Info().Str("addr", addr).Msg("HTTP server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func accessLog(ctx *fiber.Ctx) error {
	err := ctx.Next()
	logx.Debug().
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", ctx.Response().StatusCode()).
		Str("request_id", requestID(ctx)).
		Msg("http request")
	return err
}

func requestID(ctx *fiber.Ctx) string {
	return string(ctx.Response().Header.Peek(requestIDHeader))
}

func normalizeOrigins(origins string) string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
