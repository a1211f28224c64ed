package mysql

import (
	"context"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, offset, limit int) ([]*domain.Category, int64, error) {
	var categories []*domain.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Category{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, id).Error
}
