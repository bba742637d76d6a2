package handlers

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sjperalta/vehifin-api/internal/config"
	"github.com/sjperalta/vehifin-api/internal/middleware"
)

// SetupRouter wires the middleware chain and every route
func SetupRouter(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(cfg.LoginRateLimit, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			contracts := protected.Group("/contracts")
			{
				// Static routes first so they are not matched as :id
				contracts.GET("", h.Contract.Index)
				contracts.GET("/filters", h.Contract.Filters)
				contracts.GET("/export", h.Contract.Export)
				contracts.GET("/:id", h.Contract.Show)
				contracts.GET("/:id/payment_summary", h.Contract.PaymentSummary)
				contracts.GET("/:id/schedule/export", h.Contract.ScheduleExport)
				contracts.GET("/:id/sheet", h.Contract.Sheet)
				contracts.GET("/:id/photos/:person", h.Contract.Photo)
			}

			protected.POST("/seed-data", h.Seed.Create)
			protected.GET("/audits", h.Audit.Index)
			protected.GET("/jobs/status", h.Job.Status)
		}
	}

	return router
}
