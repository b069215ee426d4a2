package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generation is one batch of drafts produced for a user. Content holds the
// GeneratedContent document as returned by the model.
type Generation struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	MainTopic      string         `gorm:"column:main_topic" json:"main_topic"`
	GeneratedTopic string         `gorm:"column:generated_topic" json:"generated_topic"`
	Model          string         `gorm:"column:model" json:"model"`
	Content        datatypes.JSON `gorm:"column:content;type:jsonb;not null" json:"content"`
	CreatedAt      time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Generation) TableName() string { return "generations" }

func (g *Generation) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
