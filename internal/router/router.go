package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sekolah-go-api/internal/config"
	"github.com/noah-isme/sekolah-go-api/internal/handler"
	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	// Admins backs the session middleware's account check.
	Admins middleware.AdminLookup

	AuthHandler            *handler.AuthHandler
	SiteHandler            *handler.SiteHandler
	ContactHandler         *handler.ContactHandler
	StaffHandler           *handler.StaffHandler
	ArticleHandler         *handler.ArticleHandler
	GalleryHandler         *handler.GalleryHandler
	ExtracurricularHandler *handler.ExtracurricularHandler
	MaterialsHandler       *handler.MaterialsHandler

	DashboardHandler            *handler.DashboardHandler
	NotificationHandler         *handler.NotificationHandler
	AuditHandler                *handler.AuditHandler
	AdminContactHandler         *handler.AdminContactHandler
	AdminStaffHandler           *handler.AdminStaffHandler
	AdminArticleHandler         *handler.AdminArticleHandler
	AdminGalleryHandler         *handler.AdminGalleryHandler
	AdminExtracurricularHandler *handler.AdminExtracurricularHandler
	AdminMaterialsHandler       *handler.AdminMaterialsHandler
	AdminSiteHandler            *handler.AdminSiteHandler
	AdminAccountHandler         *handler.AdminAccountHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	// Public site API.
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}
	if deps.SiteHandler != nil {
		deps.SiteHandler.Register(api)
	}
	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(api.Group("", middleware.RateLimit("contact", 5, time.Minute)))
	}
	if deps.StaffHandler != nil {
		deps.StaffHandler.Register(api.Group("/staff"))
	}
	if deps.ArticleHandler != nil {
		deps.ArticleHandler.Register(api.Group("/articles"))
	}
	if deps.GalleryHandler != nil {
		deps.GalleryHandler.Register(api.Group("/gallery"))
	}
	if deps.ExtracurricularHandler != nil {
		deps.ExtracurricularHandler.Register(api.Group("/extracurricular"))
	}
	if deps.MaterialsHandler != nil {
		deps.MaterialsHandler.Register(api.Group("/learning"))
	}

	// Session-gated admin API.
	admin := app.Group("/api/admin", middleware.Session(cfg.SessionSecret, deps.Admins))

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterSession(admin)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(admin)
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(admin)
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(admin)
	}
	if deps.AdminContactHandler != nil {
		deps.AdminContactHandler.Register(admin)
	}
	if deps.AdminStaffHandler != nil {
		deps.AdminStaffHandler.Register(admin)
	}
	if deps.AdminArticleHandler != nil {
		deps.AdminArticleHandler.Register(admin)
	}
	if deps.AdminGalleryHandler != nil {
		deps.AdminGalleryHandler.Register(admin)
	}
	if deps.AdminExtracurricularHandler != nil {
		deps.AdminExtracurricularHandler.Register(admin)
	}
	if deps.AdminMaterialsHandler != nil {
		deps.AdminMaterialsHandler.Register(admin)
	}
	if deps.AdminSiteHandler != nil {
		deps.AdminSiteHandler.Register(admin)
	}

	// Account management is restricted to superadmins.
	if deps.AdminAccountHandler != nil {
		accounts := admin.Group("/admins", middleware.RequireSuperadmin())
		deps.AdminAccountHandler.Register(accounts)
	}
}
