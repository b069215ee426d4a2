package db

import (
	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Onboarding
		&types.UserProfile{},
		&types.OnboardingResponse{},

		// Content
		&types.Generation{},
	)
}
