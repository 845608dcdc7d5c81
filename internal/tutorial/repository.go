// File: internal/tutorial/repository.go
package tutorial

import (
	"context"
	"errors"

	"skillmarket_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for tutorials.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *Tutorial) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tutorial, error)
	FindBySlug(ctx context.Context, slug string) (*Tutorial, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, category, tag string, offset, limit int) ([]Tutorial, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM tutorial repository.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, t *Tutorial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Tutorial, error) {
	var t Tutorial
	err := r.db.WithContext(ctx).Preload("Author").First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Tutorial not found.")
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Tutorial, error) {
	var t Tutorial
	err := r.db.WithContext(ctx).Preload("Author").First(&t, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Tutorial not found.")
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Tutorial{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) List(ctx context.Context, category, tag string, offset, limit int) ([]Tutorial, int64, error) {
	var tutorials []Tutorial
	var total int64

	query := r.db.WithContext(ctx).Model(&Tutorial{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").Order("created_at desc").Offset(offset).Limit(limit).Find(&tutorials).Error
	if err != nil {
		return nil, 0, err
	}
	return tutorials, total, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Tutorial{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Tutorial not found.")
	}
	return nil
}
