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
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/config"
	"github.com/claustro-app/claustro-api/internal/database"
	"github.com/claustro-app/claustro-api/internal/handler"
	"github.com/claustro-app/claustro-api/internal/middleware"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
	"github.com/claustro-app/claustro-api/internal/router"
	"github.com/claustro-app/claustro-api/internal/service"
	cloud "github.com/claustro-app/claustro-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	policy, err := cfg.WorkloadPolicy()
	if err != nil {
		log.Fatalf("invalid workload policy: %v", err)
	}
	patterns := cfg.ClassifyPatterns()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Role{}, &models.Department{}, &models.Category{},
		&models.Member{}, &models.ActivityType{}, &models.ActivityRecord{},
		&models.CategoryChangeRequest{}, &models.RequestDocument{},
		&models.News{}, &models.Event{}, &models.Call{},
		&models.Notification{}, &models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NatsURL != "" {
		natsConn, err = nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	memberRepo := repository.NewMemberRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	activityTypeRepo := repository.NewActivityTypeRepository(db)
	activityRecordRepo := repository.NewActivityRecordRepository(db)
	changeRequestRepo := repository.NewChangeRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	eventRepo := repository.NewEventRepository(db)
	callRepo := repository.NewCallRepository(db)
	workloadRepo := repository.NewWorkloadRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, "claustro", natsConn, validate, logger)
	authService := service.NewAuthService(memberRepo, roleRepo, validate, cfg.JWTSecret, cfg.JWTExpiry, logger)
	memberService := service.NewMemberService(memberRepo, categoryRepo, auditLogRepo, notificationService, validate, logger)
	categoryService := service.NewCategoryService(categoryRepo, validate, logger)
	directoryService := service.NewDirectoryService(roleRepo, departmentRepo, validate, logger)
	activityService := service.NewActivityService(activityTypeRepo, activityRecordRepo, patterns, validate, logger)
	changeRequestService := service.NewChangeRequestService(changeRequestRepo, memberRepo, categoryRepo, auditLogRepo, notificationService, uploader, validate, cfg.UploadMaxSizeMB, logger)
	contentService := service.NewContentService(newsRepo, eventRepo, callRepo, redisClient, cfg.ContentCacheTTL, validate, logger)
	reportService := service.NewReportService(workloadRepo, policy, validate, logger)
	exportService := service.NewExportService(logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:          handler.NewAuthHandler(authService, logger),
		MemberHandler:        handler.NewMemberHandler(memberService, logger),
		CategoryHandler:      handler.NewCategoryHandler(categoryService, logger),
		DirectoryHandler:     handler.NewDirectoryHandler(directoryService, logger),
		ActivityHandler:      handler.NewActivityHandler(activityService, logger),
		ChangeRequestHandler: handler.NewChangeRequestHandler(changeRequestService, logger),
		ContentHandler:       handler.NewContentHandler(contentService, logger),
		NotificationHandler:  handler.NewNotificationHandler(notificationService, logger, 30*time.Second),
		ReportHandler:        handler.NewReportHandler(reportService, exportService, logger),
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
	})

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationService.Start(runCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-runCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

// seedRoles ensures the built-in roles exist before the first login.
func seedRoles(db *gorm.DB) error {
	for _, name := range []string{models.RoleAdmin, models.RoleMember} {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
