package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/brandcraft-backend/internal/carousel"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/services"
)

type Services struct {
	Emitter    services.SSEEmitter
	Auth       services.AuthService
	Avatar     services.AvatarService
	Profile    services.ProfileService
	Onboarding services.OnboardingService
	Content    services.ContentService
	Carousel   services.CarouselService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")
	emit := &services.BusEmitter{Bus: clients.SSEBus, Log: log}

	auth := services.NewAuthService(db, log, repos.User, repos.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	avatars, err := services.NewAvatarService(log, repos.UserProfile, clients.Bucket, emit)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}
	profiles := services.NewProfileService(db, log, repos.User, repos.UserProfile, repos.OnboardingResponse, emit)
	onboarding := services.NewOnboardingService(log, profiles, avatars, emit)
	contents := services.NewContentService(log, clients.OpenAI, repos.Generation, repos.OnboardingResponse, emit, metrics)

	raster, err := wireRasterizer(log, cfg)
	if err != nil {
		return Services{}, err
	}
	nav := services.NewMemoryNavStore()
	if clients.Redis != nil {
		nav = services.NewRedisNavStore(clients.Redis, "")
	}
	carousels := services.NewCarouselService(log, contents, emit, services.CarouselServiceOptions{
		Rasterizer: raster,
		Nav:        nav,
		SlideDelay: cfg.SlideDelay,
		Metrics:    metrics,
		IdleTTL:    cfg.CarouselIdleTTL,
		MaxActive:  cfg.CarouselMaxActive,
	})

	return Services{
		Emitter:    emit,
		Auth:       auth,
		Avatar:     avatars,
		Profile:    profiles,
		Onboarding: onboarding,
		Content:    contents,
		Carousel:   carousels,
	}, nil
}

func wireRasterizer(log *logger.Logger, cfg Config) (carousel.Rasterizer, error) {
	var palette carousel.Palette
	if cfg.PalettePath != "" {
		p, err := carousel.LoadPalette(cfg.PalettePath)
		if err != nil {
			return nil, fmt.Errorf("load carousel palette: %w", err)
		}
		log.Info("Carousel palette loaded", "path", cfg.PalettePath, "gradients", len(p))
		palette = p
	}
	raster, err := carousel.NewGGRasterizer(carousel.GGRasterizerOptions{
		Palette:     palette,
		FontPath:    cfg.FontPath,
		Concurrency: cfg.RenderConcurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("init carousel rasterizer: %w", err)
	}
	return raster, nil
}
