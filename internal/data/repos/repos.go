package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/brandcraft-backend/internal/data/repos/auth"
	"github.com/yungbote/brandcraft-backend/internal/data/repos/content"
	"github.com/yungbote/brandcraft-backend/internal/data/repos/user"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserProfileRepo = user.UserProfileRepo
type OnboardingResponseRepo = user.OnboardingResponseRepo
type UserTokenRepo = auth.UserTokenRepo
type GenerationRepo = content.GenerationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return user.NewUserProfileRepo(db, baseLog)
}
func NewOnboardingResponseRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingResponseRepo {
	return user.NewOnboardingResponseRepo(db, baseLog)
}
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}
func NewGenerationRepo(db *gorm.DB, baseLog *logger.Logger) GenerationRepo {
	return content.NewGenerationRepo(db, baseLog)
}
