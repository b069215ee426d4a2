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

type UserProfileRepo interface {
	// UpsertOnboarding writes the step-1 answers and marks onboarding done.
	UpsertOnboarding(dbc dbctx.Context, row *types.UserProfile) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateFields(dbc dbctx.Context, userID uuid.UUID, updates map[string]any) error
	UpdateAvatarFields(dbc dbctx.Context, userID uuid.UUID, bucketKey, avatarURL string) error
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return &userProfileRepo{db: db, log: baseLog.With("repo", "UserProfileRepo")}
}

func (r *userProfileRepo) UpsertOnboarding(dbc dbctx.Context, row *types.UserProfile) error {
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	row.OnboardingCompleted = true
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	return dbc.Pick(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name",
				"company_name",
				"role",
				"industry",
				"onboarding_completed",
				"updated_at",
			}),
		}).
		Create(row).Error
}

// GetByUserID returns nil, nil when the user has no profile yet.
func (r *userProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var row types.UserProfile
	err := dbc.Pick(r.db).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateFields creates the profile on first write so a user who skipped
// onboarding can still edit it.
func (r *userProfileRepo) UpdateFields(dbc dbctx.Context, userID uuid.UUID, updates map[string]any) error {
	if userID == uuid.Nil || len(updates) == 0 {
		return nil
	}
	tx := dbc.Pick(r.db)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.UserProfile{UserID: userID}).Error; err != nil {
		return err
	}
	updates["updated_at"] = time.Now().UTC()
	return tx.Model(&types.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (r *userProfileRepo) UpdateAvatarFields(dbc dbctx.Context, userID uuid.UUID, bucketKey, avatarURL string) error {
	return r.UpdateFields(dbc, userID, map[string]any{
		"avatar_bucket_key": bucketKey,
		"avatar_url":        avatarURL,
	})
}
