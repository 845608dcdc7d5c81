// File: internal/comment/repository.go
package comment

import (
	"context"
	"errors"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for comments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByTutorial(ctx context.Context, tutorialID uuid.UUID) ([]Comment, error)
	FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	PurgeByTutorial(ctx context.Context, tx *gorm.DB, tutorialID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM comment repository.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).Preload("Author").First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Comment not found.")
		}
		return nil, err
	}
	return &c, nil
}

// ListByTutorial returns the tutorial's whole thread, oldest first. The
// service assembles the reply nesting.
func (r *gormRepository) ListByTutorial(ctx context.Context, tutorialID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("tutorial_id = ?", tutorialID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindChildIDs returns the IDs of every comment whose parent is in parentIDs.
func (r *gormRepository) FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Comment{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByIDs removes the given comments and any notifications that point at
// them.
func (r *gormRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Delete(&notification.Notification{}).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Comment{}, "id IN ?", ids).Error
}

// PurgeByTutorial removes a tutorial's entire thread inside the caller's
// transaction, notifications first so no dangling comment links survive.
func (r *gormRepository) PurgeByTutorial(ctx context.Context, tx *gorm.DB, tutorialID uuid.UUID) error {
	err := tx.WithContext(ctx).
		Where("comment_id IN (?)", tx.Model(&Comment{}).Select("id").Where("tutorial_id = ?", tutorialID)).
		Delete(&notification.Notification{}).Error
	if err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&Comment{}, "tutorial_id = ?", tutorialID).Error
}
