package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/brandcraft-backend/internal/data/repos"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

type Repos struct {
	User               repos.UserRepo
	UserToken          repos.UserTokenRepo
	UserProfile        repos.UserProfileRepo
	OnboardingResponse repos.OnboardingResponseRepo
	Generation         repos.GenerationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		UserToken:          repos.NewUserTokenRepo(db, log),
		UserProfile:        repos.NewUserProfileRepo(db, log),
		OnboardingResponse: repos.NewOnboardingResponseRepo(db, log),
		Generation:         repos.NewGenerationRepo(db, log),
	}
}
