package content

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/brandcraft-backend/internal/domain"
	"github.com/yungbote/brandcraft-backend/internal/platform/dbctx"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
)

const defaultListLimit = 20

type GenerationRepo interface {
	Create(dbc dbctx.Context, rows []*types.Generation) ([]*types.Generation, error)
	// GetForUser returns nil, nil when id does not exist or belongs to someone else.
	GetForUser(dbc dbctx.Context, userID, id uuid.UUID) (*types.Generation, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Generation, error)
}

type generationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenerationRepo(db *gorm.DB, baseLog *logger.Logger) GenerationRepo {
	return &generationRepo{db: db, log: baseLog.With("repo", "GenerationRepo")}
}

func (r *generationRepo) Create(dbc dbctx.Context, rows []*types.Generation) ([]*types.Generation, error) {
	if len(rows) == 0 {
		return []*types.Generation{}, nil
	}
	if err := dbc.Pick(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *generationRepo) GetForUser(dbc dbctx.Context, userID, id uuid.UUID) (*types.Generation, error) {
	var row types.Generation
	err := dbc.Pick(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *generationRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Generation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var results []*types.Generation
	if err := dbc.Pick(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
