package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"rfphub/internal/ai"
	appsvc "rfphub/internal/app"
	"rfphub/internal/bootstrap"
	"rfphub/internal/cache"
	"rfphub/internal/email"
	"rfphub/internal/platform/rabbitmq"
	"rfphub/internal/repository"
	"rfphub/internal/transport/http/handler"
	"rfphub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	vendorRepo := repository.NewVendorRepository(app.MySQL)
	rfpRepo := repository.NewRFPRepository(app.MySQL)
	responseRepo := repository.NewResponseRepository(app.MySQL)
	userRepo := repository.NewUserRepository(app.MySQL)

	extractor := ai.NewExtractionClient(ai.Config{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.Model,
		Timeout: time.Duration(app.Config.LLM.TimeoutSeconds) * time.Second,
	})
	gateway := email.NewSendGridGateway(email.Config{
		APIKey:    app.Config.SendGrid.APIKey,
		FromEmail: app.Config.SendGrid.FromEmail,
		FromName:  app.Config.SendGrid.FromName,
		Timeout:   time.Duration(app.Config.SendGrid.TimeoutSeconds) * time.Second,
	})
	publisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.EmailEventQueue)
	responseCache := cache.NewResponseCache(app.Redis, time.Duration(app.Config.Redis.ResponseTTLSeconds)*time.Second)

	vendorService := appsvc.NewVendorService(vendorRepo, responseRepo)
	rfpService := appsvc.NewRFPService(rfpRepo, vendorRepo, responseRepo, extractor, gateway, publisher, responseCache)
	inboundService := appsvc.NewInboundService(vendorRepo, rfpRepo, responseRepo, extractor, publisher, responseCache)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	vendorHandler := handler.NewVendorHandler(vendorService)
	rfpHandler := handler.NewRFPHandler(rfpService)
	webhookHandler := handler.NewWebhookHandler(inboundService)
	authHandler := handler.NewAuthHandler(authService)

	authGroup := router.Group("/api/v1/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	vendors := router.Group("/vendor_management/vendors")
	vendors.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	vendors.POST("", vendorHandler.Create)
	vendors.GET("", vendorHandler.List)
	vendors.GET("/:id", vendorHandler.Get)
	vendors.PUT("/:id", vendorHandler.Update)
	vendors.DELETE("/:id", vendorHandler.Delete)

	rfps := router.Group("/rfp_management/rfps")
	rfps.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	rfps.POST("", rfpHandler.Create)
	rfps.GET("", rfpHandler.List)
	rfps.GET("/:id", rfpHandler.Get)
	rfps.PUT("/:id", rfpHandler.Update)
	rfps.DELETE("/:id", rfpHandler.Delete)
	rfps.POST("/:id/send", rfpHandler.Send)
	rfps.POST("/:id/evaluate", rfpHandler.Evaluate)
	rfps.GET("/:id/responses", rfpHandler.ListResponses)

	// The mail relay cannot authenticate, so the inbound webhook stays open.
	router.POST("/vendor_management/webhooks/sendgrid/inbound", webhookHandler.Inbound)

	return router
}
