package app

import (
	"github.com/gin-gonic/gin"

	bchttp "github.com/yungbote/brandcraft-backend/internal/http"
	httpH "github.com/yungbote/brandcraft-backend/internal/http/handlers"
	httpMW "github.com/yungbote/brandcraft-backend/internal/http/middleware"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/gcp"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Onboarding *httpH.OnboardingHandler
	Profile    *httpH.ProfileHandler
	Content    *httpH.ContentHandler
	Carousel   *httpH.CarouselHandler
	Realtime   *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Auth:       httpH.NewAuthHandler(services.Auth),
		Onboarding: httpH.NewOnboardingHandler(services.Onboarding),
		Profile:    httpH.NewProfileHandler(services.Profile, services.Avatar),
		Content:    httpH.NewContentHandler(services.Content),
		Carousel:   httpH.NewCarouselHandler(log, services.Carousel),
		Realtime:   httpH.NewRealtimeHandler(log, hub),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	mediaDir := ""
	if storageCfg, err := cfg.ObjectStorage(); err == nil && storageCfg.Mode == gcp.ObjectStorageModeLocal {
		mediaDir = storageCfg.LocalDir
	}
	return bchttp.NewRouter(bchttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.OtelServiceName,
		AllowedOrigins:    cfg.AllowedOrigins,
		MediaDir:          mediaDir,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		OnboardingHandler: handlers.Onboarding,
		ProfileHandler:    handlers.Profile,
		ContentHandler:    handlers.Content,
		CarouselHandler:   handlers.Carousel,
		RealtimeHandler:   handlers.Realtime,
	})
}
