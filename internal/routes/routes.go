package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/oakhavenpractice/intake-backend/internal/config"
	"github.com/oakhavenpractice/intake-backend/internal/handlers"
	"github.com/oakhavenpractice/intake-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	clientHandler *handlers.ClientHandler,
	formHandler *handlers.FormHandler,
	tokenHandler *handlers.TokenHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)

	// Client intake is public; everything else on /clients is the
	// therapist dashboard.
	api.Post("/clients", clientHandler.Signup)
	api.Get("/clients", middleware.JWTProtected(cfg), clientHandler.List)
	api.Get("/clients/:id", middleware.JWTProtected(cfg), clientHandler.Get)
	api.Get("/clients/:id/status", middleware.JWTProtected(cfg), clientHandler.Status)
	api.Get("/clients/:id/results", middleware.JWTProtected(cfg), clientHandler.Results)
	api.Post("/clients/:id/activate", middleware.JWTProtected(cfg), clientHandler.Activate)
	api.Post("/clients/:id/deactivate", middleware.JWTProtected(cfg), clientHandler.Deactivate)

	// Questionnaire access tokens. Validation and mark-used are public:
	// the token itself is the capability.
	api.Post("/tokens/generate", middleware.JWTProtected(cfg), tokenHandler.Generate)
	api.Get("/tokens/:token/validate", tokenHandler.Validate)
	api.Post("/tokens/:token/use", tokenHandler.MarkUsed)

	// Forms: invites are issued from the dashboard, the token-holding
	// client fetches and submits without a session.
	api.Post("/forms/send", middleware.JWTProtected(cfg), formHandler.Send)
	api.Get("/forms/:token", formHandler.Get)
	api.Post("/forms/:token/submit", formHandler.Submit)
}
