package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"smartbooking/internal/config"
	"smartbooking/internal/database"
	"smartbooking/internal/middleware"
	"smartbooking/internal/modules/audit"
	"smartbooking/internal/modules/auth"
	"smartbooking/internal/modules/booking"
	"smartbooking/internal/modules/catalog"
	"smartbooking/internal/modules/notification"
	"smartbooking/internal/modules/payment"
	"smartbooking/internal/modules/schedule"
	jwtsvc "smartbooking/internal/pkg/jwt"
	"smartbooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(resourceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	auditService := audit.NewService(auditRepo)
	auditHandler := audit.NewHandler(auditService)

	paymentService := payment.NewService(paymentRepo)

	hub := notification.NewHub()
	defer hub.Close()
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	bookingService := booking.NewService(bookingRepo, resourceRepo, auditService, paymentService, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	scheduleService := schedule.NewService(bookingRepo, resourceRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			scheduleHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			auditHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
