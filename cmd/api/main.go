package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/config"
	"github.com/noah-isme/sekolah-go-api/internal/database"
	"github.com/noah-isme/sekolah-go-api/internal/handler"
	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/observability"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
	"github.com/noah-isme/sekolah-go-api/internal/router"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	cloud "github.com/noah-isme/sekolah-go-api/pkg/cloudinary"
	"github.com/noah-isme/sekolah-go-api/pkg/recaptcha"
	"github.com/noah-isme/sekolah-go-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.AuditLog{},
		&models.ContactMessage{},
		&models.ContactInfo{},
		&models.Teacher{},
		&models.Article{},
		&models.Comment{},
		&models.GalleryImage{},
		&models.Extracurricular{},
		&models.AboutPage{},
		&models.SiteSettings{},
		&models.Facility{},
		&models.ClassGroup{},
		&models.Subject{},
		&models.Material{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := database.SeedFacilities(db); err != nil {
		log.Fatalf("failed to seed facilities: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, caching and dedupe fall back to the database")
	}

	store, err := buildStorage(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	var captcha recaptcha.Verifier
	if cfg.RecaptchaSecret != "" {
		captcha = recaptcha.New(cfg.RecaptchaSecret, logger)
	} else {
		logger.Warn().Msg("recaptcha secret not configured, contact form verification disabled")
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	adminRepo := repository.NewAdminRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	messageRepo := repository.NewContactMessageRepository(db)
	contactInfoRepo := repository.NewContactInfoRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	extracurricularRepo := repository.NewExtracurricularRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	classRepo := repository.NewClassGroupRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	materialRepo := repository.NewMaterialRepository(db)

	auditService := service.NewAuditService(auditLogRepo, messageRepo, adminRepo, cfg.NotificationLimit, logger)
	authService := service.NewAuthService(adminRepo, auditService, validate, cfg.SessionSecret, cfg.SessionTTL, cfg.SessionRememberTTL, logger)
	contactService := service.NewContactService(messageRepo, contactInfoRepo, adminRepo, captcha, redisClient, validate, cfg.ContactDedupeTTL, logger)
	staffService := service.NewStaffService(teacherRepo, validate, logger)
	articleService := service.NewArticleService(articleRepo, commentRepo, validate, logger)
	galleryService := service.NewGalleryService(galleryRepo, articleRepo, validate, logger)
	extracurricularService := service.NewExtracurricularService(extracurricularRepo, validate, logger)
	materialsService := service.NewMaterialsService(classRepo, subjectRepo, materialRepo, validate, logger)
	siteService := service.NewSiteService(siteRepo, articleRepo, validate, logger)
	dashboardService := service.NewDashboardService(classRepo, extracurricularRepo, articleRepo, teacherRepo, adminRepo, materialRepo, galleryRepo, messageRepo, auditLogRepo, redisClient, cfg.DashboardCacheTTL, logger)
	accountService := service.NewAdminAccountService(adminRepo, validate, logger)
	uploadService := service.NewUploadService(store, cfg.MaxUploadMB, logger)

	deps := router.Dependencies{
		Admins: adminRepo,

		AuthHandler:            handler.NewAuthHandler(authService, logger),
		SiteHandler:            handler.NewSiteHandler(siteService, contactService, logger),
		ContactHandler:         handler.NewContactHandler(contactService, logger),
		StaffHandler:           handler.NewStaffHandler(staffService, cfg.DefaultPageSize, logger),
		ArticleHandler:         handler.NewArticleHandler(articleService, cfg.DefaultPageSize, logger),
		GalleryHandler:         handler.NewGalleryHandler(galleryService, cfg.DefaultPageSize, logger),
		ExtracurricularHandler: handler.NewExtracurricularHandler(extracurricularService, cfg.DefaultPageSize, logger),
		MaterialsHandler:       handler.NewMaterialsHandler(materialsService, logger),

		DashboardHandler:            handler.NewDashboardHandler(dashboardService, logger),
		NotificationHandler:         handler.NewNotificationHandler(auditService, logger),
		AuditHandler:                handler.NewAuditHandler(auditService, logger),
		AdminContactHandler:         handler.NewAdminContactHandler(contactService, auditService, cfg.DefaultPageSize, logger),
		AdminStaffHandler:           handler.NewAdminStaffHandler(staffService, uploadService, auditService, logger),
		AdminArticleHandler:         handler.NewAdminArticleHandler(articleService, uploadService, auditService, logger),
		AdminGalleryHandler:         handler.NewAdminGalleryHandler(galleryService, uploadService, auditService, logger),
		AdminExtracurricularHandler: handler.NewAdminExtracurricularHandler(extracurricularService, uploadService, auditService, logger),
		AdminMaterialsHandler:       handler.NewAdminMaterialsHandler(materialsService, uploadService, auditService, logger),
		AdminSiteHandler:            handler.NewAdminSiteHandler(siteService, uploadService, auditService, logger),
		AdminAccountHandler:         handler.NewAdminAccountHandler(accountService, uploadService, auditService, cfg.DefaultPageSize, logger),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildStorage(cfg config.Config, logger zerolog.Logger) (storage.FileStorage, error) {
	if cfg.StorageBackend == config.StorageCloudinary {
		return cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
	}

	return storage.NewLocal(cfg.UploadRoot, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
