package application

import (
	"context"
	"errors"
	"strings"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// CatalogApplicationService 商品目录应用服务：商品与类目的查询和管理
type CatalogApplicationService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

func NewCatalogApplicationService(products domain.ProductRepository, categories domain.CategoryRepository) *CatalogApplicationService {
	return &CatalogApplicationService{products: products, categories: categories}
}

// ListQuery 商品列表请求参数
type ListQuery struct {
	Search     string
	CategoryID uint
	Sort       string
	Page       int
	PageSize   int
}

// ListProducts 分页列出商品，支持搜索/类目过滤/排序
func (s *CatalogApplicationService) ListProducts(ctx context.Context, q ListQuery) ([]*domain.Product, *utils.Pagination, error) {
	p := utils.NewPagination(q.Page, q.PageSize, 0)
	products, total, err := s.products.List(ctx, domain.ProductQuery{
		Search:     strings.TrimSpace(q.Search),
		CategoryID: q.CategoryID,
		Sort:       q.Sort,
		Offset:     p.Offset(),
		Limit:      p.Limit(),
	})
	if err != nil {
		return nil, nil, err
	}
	return products, utils.NewPagination(q.Page, q.PageSize, total), nil
}

// GetProduct 获取商品详情
func (s *CatalogApplicationService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// CreateProduct 创建商品
func (s *CatalogApplicationService) CreateProduct(ctx context.Context, name, description string, price float64, stock int, imagePath string, categoryID uint) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || price < 0 || stock < 0 {
		return nil, ErrInvalidInput
	}
	if categoryID != 0 {
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
	}
	product := &domain.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImagePath:   imagePath,
		CategoryID:  categoryID,
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, id uint, name, description string, price float64, stock int, imagePath string, categoryID uint) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || price < 0 || stock < 0 {
		return nil, ErrInvalidInput
	}
	product.Name = name
	product.Description = description
	product.Price = price
	product.Stock = stock
	product.ImagePath = imagePath
	product.CategoryID = categoryID
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *CatalogApplicationService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// ListCategories 分页列出类目
func (s *CatalogApplicationService) ListCategories(ctx context.Context, page, pageSize int) ([]*domain.Category, *utils.Pagination, error) {
	p := utils.NewPagination(page, pageSize, 0)
	categories, total, err := s.categories.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return nil, nil, err
	}
	return categories, utils.NewPagination(page, pageSize, total), nil
}

// CreateCategory 创建类目
func (s *CatalogApplicationService) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))
	if name == "" || slug == "" {
		return nil, ErrInvalidInput
	}
	category := &domain.Category{Name: name, Slug: slug}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新类目
func (s *CatalogApplicationService) UpdateCategory(ctx context.Context, id uint, name, slug string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))
	if name == "" || slug == "" {
		return nil, ErrInvalidInput
	}
	category.Name = name
	category.Slug = slug
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除类目
func (s *CatalogApplicationService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categories.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	} else if err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
