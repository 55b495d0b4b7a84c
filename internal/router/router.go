package router

import (
	"kgtransfer/config"
	"kgtransfer/internal/database"
	"kgtransfer/internal/handler"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/middleware"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/service"
	"kgtransfer/internal/ws"
	"kgtransfer/pkg/cloudinary"
	"kgtransfer/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is the wired HTTP application plus the background pieces that need
// an orderly stop.
type App struct {
	Engine   *gin.Engine
	Hub      *ws.Hub
	Notifier *service.NotificationService
	Auth     *service.AuthService

	limiters []*middleware.InMemoryRateLimiter
}

// Close stops the rate limiter janitors and waits for pending notification emails.
func (a *App) Close() {
	for _, l := range a.limiters {
		l.Stop()
	}
	a.Notifier.Wait()
}

// Setup wires repositories, services and handlers. mail and cloud may be nil
// when SMTP or media storage is not configured.
func Setup(cfg *config.Config, db *gorm.DB, log logger.Logger, mail mailer.Mailer, cloud cloudinary.Client) *App {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidation()

	globalLimiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	formLimiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.FormRequests, cfg.RateLimit.FormWindow)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.RateLimit(globalLimiter))

	// Repositories
	contactRepo := repository.NewContactRequestRepository(db)
	applicationRepo := repository.NewApplicationRequestRepository(db)
	transferRepo := repository.NewTransferRequestRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	homeRepo := repository.NewHomeSettingsRepository(db)
	transferConfigRepo := repository.NewTransferConfigRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	hub := ws.NewHub()

	// Services
	settingsSvc := service.NewSettingsService(settingRepo, homeRepo, transferConfigRepo, database.PrivateSettings)
	authSvc := service.NewAuthService(cfg, adminRepo)
	pricingSvc := service.NewPricingService(settingsSvc, vehicleRepo)
	transferSvc := service.NewTransferService(transferRepo, vehicleRepo, routeRepo, settingsSvc)
	reviewSvc := service.NewReviewService(reviewRepo)
	notifier := service.NewNotificationService(mail, hub, settingsSvc, cfg.SMTP, log)
	sitemapSvc := service.NewSitemapService(cfg.Server.PublicURL, blogRepo, routeRepo, galleryRepo)
	seoSvc := service.NewSEOService(cfg.Server.PublicURL, settingsSvc, reviewSvc, blogRepo, routeRepo)

	// Handlers
	audit := handler.NewAuditor(auditRepo, log)
	contactHandler := handler.NewContactHandler(contactRepo, notifier, audit, log)
	applicationHandler := handler.NewApplicationHandler(applicationRepo, notifier, audit, log)
	transferHandler := handler.NewTransferHandler(transferRepo, transferSvc, pricingSvc, notifier, audit, log)
	blogHandler := handler.NewBlogHandler(blogRepo, audit, log)
	reviewHandler := handler.NewReviewHandler(reviewRepo, reviewSvc, notifier, audit, log)
	benefitHandler := handler.NewBenefitHandler(benefitRepo, audit, log)
	vehicleHandler := handler.NewVehicleHandler(vehicleRepo, audit, log)
	routeHandler := handler.NewRouteHandler(routeRepo, audit, log)
	galleryHandler := handler.NewGalleryHandler(galleryRepo, cloud, audit, log)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, audit, log)
	adminHandler := handler.NewAdminHandler(authSvc, dashboardRepo, auditRepo, audit, log)
	uploadHandler := handler.NewUploadHandler(cloud, audit, log)
	siteHandler := handler.NewSiteHandler(db, sitemapSvc, seoSvc, log)

	r.GET("/healthz", siteHandler.Healthz)
	r.GET("/sitemap.xml", siteHandler.Sitemap)
	r.GET("/robots.txt", siteHandler.Robots)
	r.GET("/ws/admin", ws.ServeAdmin(&cfg.JWT, cfg.Server.AllowedOrigins, hub, log))

	formLimit := middleware.RateLimit(formLimiter)

	api := r.Group("/api")
	{
		api.POST("/contact-requests", formLimit, contactHandler.Create)
		api.POST("/application-requests", formLimit, applicationHandler.Create)
		api.POST("/transfers", formLimit, transferHandler.Create)
		api.POST("/transfers/estimate", transferHandler.Estimate)

		api.GET("/blog", blogHandler.ListPublished)
		api.GET("/blog/:slug", blogHandler.GetBySlug)

		api.GET("/reviews", reviewHandler.ListApproved)
		api.GET("/reviews/summary", reviewHandler.Summary)
		api.POST("/reviews", formLimit, reviewHandler.Submit)

		api.GET("/benefits", benefitHandler.ListActive)
		api.GET("/vehicles", vehicleHandler.ListActive)
		api.GET("/vehicles/:id", vehicleHandler.GetActive)
		api.GET("/routes", routeHandler.ListActive)
		api.GET("/routes/:slug", routeHandler.GetBySlug)
		api.GET("/gallery", galleryHandler.ListActive)
		api.GET("/gallery/:id", galleryHandler.GetActive)

		api.GET("/settings", settingsHandler.Public)
		api.GET("/settings/home", settingsHandler.Home)
		api.GET("/transfer-config", settingsHandler.TransferConfig)

		seo := api.Group("/seo")
		seo.GET("/organization", siteHandler.Organization)
		seo.GET("/blog/:slug", siteHandler.BlogPost)
		seo.GET("/routes/:slug", siteHandler.Route)

		api.POST("/admin/login", formLimit, adminHandler.Login)
		api.POST("/admin/refresh", adminHandler.Refresh)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(&cfg.JWT), middleware.AdminRequired())
		{
			admin.GET("/me", adminHandler.Me)
			admin.PATCH("/password", adminHandler.ChangePassword)
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/audit-logs", adminHandler.AuditLogs)

			contacts := admin.Group("/contact-requests")
			contacts.GET("", contactHandler.List)
			contacts.GET("/:id", contactHandler.Get)
			contacts.PATCH("/:id", contactHandler.UpdateStatus)
			contacts.DELETE("/:id", contactHandler.Delete)

			applications := admin.Group("/application-requests")
			applications.GET("", applicationHandler.List)
			applications.GET("/:id", applicationHandler.Get)
			applications.PATCH("/:id", applicationHandler.UpdateStatus)
			applications.DELETE("/:id", applicationHandler.Delete)

			transfers := admin.Group("/transfers")
			transfers.GET("", transferHandler.List)
			transfers.GET("/:id", transferHandler.Get)
			transfers.PUT("/:id", transferHandler.Update)
			transfers.PATCH("/:id", transferHandler.UpdateStatus)
			transfers.DELETE("/:id", transferHandler.Delete)

			blog := admin.Group("/blog")
			blog.GET("", blogHandler.List)
			blog.POST("", blogHandler.Create)
			blog.GET("/:id", blogHandler.Get)
			blog.PUT("/:id", blogHandler.Update)
			blog.PATCH("/:id", blogHandler.SetPublished)
			blog.DELETE("/:id", blogHandler.Delete)

			reviews := admin.Group("/reviews")
			reviews.GET("", reviewHandler.List)
			reviews.POST("", reviewHandler.Create)
			reviews.GET("/:id", reviewHandler.Get)
			reviews.PUT("/:id", reviewHandler.Update)
			reviews.PATCH("/:id", reviewHandler.UpdateStatus)
			reviews.DELETE("/:id", reviewHandler.Delete)

			benefits := admin.Group("/benefits")
			benefits.GET("", benefitHandler.List)
			benefits.POST("", benefitHandler.Create)
			benefits.GET("/:id", benefitHandler.Get)
			benefits.PUT("/:id", benefitHandler.Update)
			benefits.PATCH("/:id", benefitHandler.SetActive)
			benefits.DELETE("/:id", benefitHandler.Delete)

			vehicles := admin.Group("/vehicles")
			vehicles.GET("", vehicleHandler.List)
			vehicles.POST("", vehicleHandler.Create)
			vehicles.GET("/:id", vehicleHandler.Get)
			vehicles.PUT("/:id", vehicleHandler.Update)
			vehicles.PATCH("/:id", vehicleHandler.SetActive)
			vehicles.DELETE("/:id", vehicleHandler.Delete)

			routes := admin.Group("/routes")
			routes.GET("", routeHandler.List)
			routes.POST("", routeHandler.Create)
			routes.GET("/:id", routeHandler.Get)
			routes.PUT("/:id", routeHandler.Update)
			routes.PATCH("/:id", routeHandler.SetActive)
			routes.DELETE("/:id", routeHandler.Delete)

			galleries := admin.Group("/galleries")
			galleries.GET("", galleryHandler.List)
			galleries.POST("", galleryHandler.Create)
			galleries.GET("/:id", galleryHandler.Get)
			galleries.PUT("/:id", galleryHandler.Update)
			galleries.PATCH("/:id", galleryHandler.SetActive)
			galleries.DELETE("/:id", galleryHandler.Delete)
			galleries.POST("/:id/photos", galleryHandler.AddPhoto)

			admin.PUT("/photos/:id", galleryHandler.UpdatePhoto)
			admin.DELETE("/photos/:id", galleryHandler.DeletePhoto)

			admin.GET("/settings", settingsHandler.All)
			admin.PUT("/settings", settingsHandler.Update)
			admin.PUT("/settings/home", settingsHandler.UpdateHome)
			admin.PUT("/transfer-config", settingsHandler.UpdateTransferConfig)

			admin.POST("/uploads", uploadHandler.Upload)
		}
	}

	return &App{
		Engine:   r,
		Hub:      hub,
		Notifier: notifier,
		Auth:     authSvc,
		limiters: []*middleware.InMemoryRateLimiter{globalLimiter, formLimiter},
	}
}
