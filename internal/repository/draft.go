package repository

import (
	"context"
	"errors"

	"memeboard/internal/models"

	"gorm.io/gorm"
)

// DraftRepository defines persistence operations for per-user compose drafts.
type DraftRepository interface {
	// GetByUser returns the user's draft, or nil when none exists.
	GetByUser(ctx context.Context, userID uint) (*models.Draft, error)
	Save(ctx context.Context, draft *models.Draft) error
	// DeleteByUser removes the user's draft. Deleting a missing draft is not
	// an error; clearing is idempotent.
	DeleteByUser(ctx context.Context, userID uint) error
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository returns a new DraftRepository implementation.
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) GetByUser(ctx context.Context, userID uint) (*models.Draft, error) {
	var draft models.Draft
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &draft, nil
}

func (r *draftRepository) Save(ctx context.Context, draft *models.Draft) error {
	if err := r.db.WithContext(ctx).Save(draft).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *draftRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Draft{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
