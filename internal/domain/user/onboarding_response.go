package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OnboardingResponse stores the content preferences from onboarding steps 2-4.
type OnboardingResponse struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ContentGoals     datatypes.JSONSlice[string] `gorm:"column:content_goals" json:"content_goals"`
	TargetAudience   string                      `gorm:"column:target_audience" json:"target_audience"`
	ContentTone      string                      `gorm:"column:content_tone;not null;default:'professional'" json:"content_tone"`
	TopicsOfInterest datatypes.JSONSlice[string] `gorm:"column:topics_of_interest" json:"topics_of_interest"`
	ContentFrequency string                      `gorm:"column:content_frequency;not null;default:'weekly'" json:"content_frequency"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (OnboardingResponse) TableName() string { return "onboarding_responses" }

func (r *OnboardingResponse) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
