package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/brandcraft-backend/internal/http/handlers"
	httpMW "github.com/yungbote/brandcraft-backend/internal/http/middleware"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/gcp"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string
	// MediaDir is served under /media when object storage runs in local mode.
	MediaDir string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	OnboardingHandler *httpH.OnboardingHandler
	ProfileHandler    *httpH.ProfileHandler
	ContentHandler    *httpH.ContentHandler
	CarouselHandler   *httpH.CarouselHandler
	RealtimeHandler   *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "brandcraft"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}
	if dir := strings.TrimSpace(cfg.MediaDir); dir != "" {
		r.Static(gcp.LocalMediaRoute, dir)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Onboarding wizard
		if cfg.OnboardingHandler != nil {
			protected.GET("/onboarding/status", cfg.OnboardingHandler.Status)
			protected.POST("/onboarding", cfg.OnboardingHandler.Start)
			protected.GET("/onboarding", cfg.OnboardingHandler.Get)
			protected.PATCH("/onboarding", cfg.OnboardingHandler.Patch)
			protected.POST("/onboarding/toggle", cfg.OnboardingHandler.Toggle)
			protected.POST("/onboarding/next", cfg.OnboardingHandler.Next)
			protected.POST("/onboarding/back", cfg.OnboardingHandler.Back)
			protected.POST("/onboarding/submit", cfg.OnboardingHandler.Submit)
		}

		// Profile
		if cfg.ProfileHandler != nil {
			protected.GET("/profile", cfg.ProfileHandler.Get)
			protected.PATCH("/profile", cfg.ProfileHandler.Update)
			protected.PATCH("/profile/preferences", cfg.ProfileHandler.UpdatePreferences)
			protected.POST("/profile/avatar", cfg.ProfileHandler.UploadAvatar)
		}

		// Generated content
		if cfg.ContentHandler != nil {
			protected.POST("/generations", cfg.ContentHandler.Generate)
			protected.GET("/generations", cfg.ContentHandler.List)
			protected.GET("/generations/:id", cfg.ContentHandler.Get)
		}

		// Carousel
		if cfg.CarouselHandler != nil {
			protected.GET("/generations/:id/carousel", cfg.CarouselHandler.State)
			protected.POST("/generations/:id/carousel/next", cfg.CarouselHandler.Next)
			protected.POST("/generations/:id/carousel/previous", cfg.CarouselHandler.Previous)
			protected.POST("/generations/:id/carousel/jump", cfg.CarouselHandler.Jump)
			protected.GET("/generations/:id/carousel/slides/:n/download", cfg.CarouselHandler.DownloadSlide)
			protected.GET("/generations/:id/carousel/download", cfg.CarouselHandler.DownloadAll)
		}
	}

	return r
}
