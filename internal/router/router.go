package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/claustro-app/claustro-api/internal/config"
	"github.com/claustro-app/claustro-api/internal/handler"
	"github.com/claustro-app/claustro-api/internal/middleware"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler          *handler.AuthHandler
	MemberHandler        *handler.MemberHandler
	CategoryHandler      *handler.CategoryHandler
	DirectoryHandler     *handler.DirectoryHandler
	ActivityHandler      *handler.ActivityHandler
	ChangeRequestHandler *handler.ChangeRequestHandler
	ContentHandler       *handler.ContentHandler
	NotificationHandler  *handler.NotificationHandler
	ReportHandler        *handler.ReportHandler
	JWTMiddleware        fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute)))
	}

	// Public institutional content
	if deps.ContentHandler != nil {
		deps.ContentHandler.Register(api.Group("/content"))
		deps.ContentHandler.RegisterAdmin(api.Group("/admin/content", jwtMiddleware, adminOnly))
	}

	if deps.MemberHandler != nil {
		deps.MemberHandler.Register(api.Group("/members", jwtMiddleware))
		deps.MemberHandler.RegisterAdmin(api.Group("/admin/members", jwtMiddleware, adminOnly))
	}

	if deps.CategoryHandler != nil {
		deps.CategoryHandler.Register(api.Group("/categories", jwtMiddleware))
		deps.CategoryHandler.RegisterAdmin(api.Group("/admin/categories", jwtMiddleware, adminOnly))
	}

	if deps.DirectoryHandler != nil {
		deps.DirectoryHandler.Register(api.Group("/directory", jwtMiddleware))
		deps.DirectoryHandler.RegisterAdmin(api.Group("/admin/directory", jwtMiddleware, adminOnly))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.RegisterTypes(api.Group("/activity-types", jwtMiddleware))
		deps.ActivityHandler.RegisterTypesAdmin(api.Group("/admin/activity-types", jwtMiddleware, adminOnly))
		deps.ActivityHandler.RegisterRecords(api.Group("/activity-records", jwtMiddleware))
	}

	if deps.ChangeRequestHandler != nil {
		deps.ChangeRequestHandler.Register(api.Group("/change-requests", jwtMiddleware))
		deps.ChangeRequestHandler.RegisterAdmin(api.Group("/admin/change-requests", jwtMiddleware, adminOnly))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}

	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(api.Group("/reports", jwtMiddleware, adminOnly))
	}
}
