package mysql

import (
	"context"
	"fmt"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if q.Search != "" {
		query = query.Where("name LIKE ?", "%"+q.Search+"%")
	}
	if q.CategoryID != 0 {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "newest":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("id ASC")
	}

	err := query.Preload("Category").Offset(q.Offset).Limit(q.Limit).Find(&products).Error
	return products, total, err
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

// AdjustStock 条件更新防止超卖：扣减时要求现有库存充足
func (r *productRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	query := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}
	res := query.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for product %d: %w", id, domain.ErrInsufficientStock)
	}
	return nil
}
