package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

type OnboardingResponseRepo interface {
	Upsert(dbc dbctx.Context, row *types.OnboardingResponse) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.OnboardingResponse, error)
}

type onboardingResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOnboardingResponseRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingResponseRepo {
	return &onboardingResponseRepo{db: db, log: baseLog.With("repo", "OnboardingResponseRepo")}
}

func (r *onboardingResponseRepo) Upsert(dbc dbctx.Context, row *types.OnboardingResponse) error {
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	if row.ContentGoals == nil {
		row.ContentGoals = []string{}
	}
	if row.TopicsOfInterest == nil {
		row.TopicsOfInterest = []string{}
	}

	return dbc.Pick(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"content_goals",
				"target_audience",
				"content_tone",
				"topics_of_interest",
				"content_frequency",
				"updated_at",
			}),
		}).
		Create(row).Error
}

// GetByUserID returns nil, nil when the user never finished onboarding.
func (r *onboardingResponseRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.OnboardingResponse, error) {
	var row types.OnboardingResponse
	err := dbc.Pick(r.db).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
