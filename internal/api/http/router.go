package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Roles          *handlers.RolesHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
	RoleResolver   auth.RoleResolver
	ActivityLogger fiber.Handler
}

// RegisterRoutes wires HTTP routes. Mutating routes require a bearer access
// token; destructive and administrative routes additionally require Admin.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	requireAdmin := auth.RequireAdmin(cfg.RoleResolver)
	excludeCustomers := auth.RequireRole(cfg.RoleResolver, domain.RoleCustomer, true)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, cfg.ActivityLogger)
	tickets.Get("/reports/closed", requireAdmin, cfg.Tickets.ClosedReport)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", requireAdmin, cfg.Tickets.Delete)
	tickets.Post("/:id/assign", excludeCustomers, cfg.Tickets.Assign)
	tickets.Get("/:id/comment", cfg.Tickets.Comments)

	comments := app.Group("/comments", cfg.AuthMiddleware.Handle, cfg.ActivityLogger)
	comments.Post("/", cfg.Comments.Create)
	comments.Get("/", cfg.Comments.List)
	comments.Patch("/:id", cfg.Comments.Update)
	comments.Delete("/:id", requireAdmin, cfg.Comments.Delete)

	activity := app.Group("/activity", cfg.AuthMiddleware.Handle, cfg.ActivityLogger)
	activity.Get("/", requireAdmin, cfg.Activity.List)

	roles := app.Group("/roles")
	roles.Get("/", cfg.Roles.List)
	roles.Get("/:id", cfg.Roles.Get)

	adminRoles := roles.Group("", cfg.AuthMiddleware.Handle, cfg.ActivityLogger, requireAdmin)
	adminRoles.Post("/", cfg.Roles.Create)
	adminRoles.Patch("/:id", cfg.Roles.Update)
	adminRoles.Delete("/:id", cfg.Roles.Delete)
}
