package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the identity answers from onboarding step 1 plus the
// avatar. One row per user.
type UserProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName            string    `gorm:"column:full_name" json:"full_name"`
	CompanyName         string    `gorm:"column:company_name" json:"company_name"`
	Role                string    `gorm:"column:role" json:"role"`
	Industry            string    `gorm:"column:industry" json:"industry"`
	OnboardingCompleted bool      `gorm:"column:onboarding_completed;not null;default:false" json:"onboarding_completed"`
	AvatarBucketKey     string    `gorm:"column:avatar_bucket_key" json:"avatar_bucket_key"`
	AvatarURL           string    `gorm:"column:avatar_url" json:"avatar_url"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

func (p *UserProfile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
