package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriquiz/backend/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	limited := router.Group("/")
	limited.Use(NewRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst).Middleware())
	{
		// HTML pages
		limited.GET("/", handler.QuizPage)
		limited.GET("/results/:id", handler.ResultsPage)
		limited.GET("/results/:id/pdf", handler.ResultsPDF)
		limited.GET("/download/:pdf_id", handler.DownloadPDF)

		// API v1 routes
		v1 := limited.Group("/api/v1")
		{
			v1.GET("/foods", handler.ListFoods)
			v1.POST("/plan", handler.BuildPlan)
			v1.POST("/sessions", handler.CreateSession)
			v1.GET("/sessions/:id/report", handler.SessionReport)

			admin := v1.Group("/admin")
			{
				admin.POST("/login", handler.AdminLogin)
				admin.GET("/leads", AdminAuthMiddleware(handler.admin), handler.ListLeads)
			}
		}
	}

	return router
}
