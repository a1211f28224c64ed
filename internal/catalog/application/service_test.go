package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type fakeProductRepository struct {
	products map[uint]*domain.Product
	nextID   uint
}

func (f *fakeProductRepository) Save(_ context.Context, p *domain.Product) error {
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepository) GetByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepository) List(_ context.Context, q domain.ProductQuery) ([]*domain.Product, int64, error) {
	var out []*domain.Product
	for _, p := range f.products {
		if q.Search != "" && !strings.Contains(p.Name, q.Search) {
			continue
		}
		if q.CategoryID != 0 && p.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepository) Delete(_ context.Context, id uint) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) AdjustStock(_ context.Context, id uint, delta int) error {
	p, ok := f.products[id]
	if !ok || p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

type fakeCategoryRepository struct {
	categories map[uint]*domain.Category
	nextID     uint
}

func (f *fakeCategoryRepository) Save(_ context.Context, c *domain.Category) error {
	if c.ID == 0 {
		f.nextID++
		c.ID = f.nextID
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepository) GetByID(_ context.Context, id uint) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepository) List(_ context.Context, _, _ int) ([]*domain.Category, int64, error) {
	var out []*domain.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCategoryRepository) Delete(_ context.Context, id uint) error {
	delete(f.categories, id)
	return nil
}

func newCatalogFixture() (*CatalogApplicationService, *fakeProductRepository, *fakeCategoryRepository) {
	products := &fakeProductRepository{products: map[uint]*domain.Product{}}
	categories := &fakeCategoryRepository{categories: map[uint]*domain.Category{}}
	return NewCatalogApplicationService(products, categories), products, categories
}

func TestCreateProduct(t *testing.T) {
	svc, _, categories := newCatalogFixture()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "数码", "digital")
	require.NoError(t, err)
	_ = categories

	product, err := svc.CreateProduct(ctx, "机械键盘", "红轴", 199.0, 50, "/img/kb.jpg", category.ID)
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "机械键盘", product.Name)
	assert.Equal(t, 50, product.Stock)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, "  ", "", 199.0, 1, "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, "键盘", "", -1, 1, "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, "键盘", "", 199.0, -1, "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 引用不存在的类目
	_, err = svc.CreateProduct(ctx, "键盘", "", 199.0, 1, "", 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetProductNotFound(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, err := svc.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProduct(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, "键盘", "", 199.0, 10, "", 0)
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, product.ID, "键盘 Pro", "升级款", 299.0, 20, "/img/pro.jpg", 0)
	require.NoError(t, err)
	assert.Equal(t, "键盘 Pro", updated.Name)
	assert.Equal(t, 299.0, updated.Price)
	assert.Equal(t, 20, updated.Stock)
}

func TestDeleteProduct(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, "键盘", "", 199.0, 10, "", 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, product.ID), ErrProductNotFound)
}

func TestListProductsPagination(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateProduct(ctx, "商品", "", 10.0, 1, "", 0)
		require.NoError(t, err)
	}

	_, p, err := svc.ListProducts(ctx, ListQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Total)
	assert.Equal(t, int64(2), p.Pages)
}

func TestCategorySlugNormalized(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	category, err := svc.CreateCategory(context.Background(), "数码", "  Digital ")
	require.NoError(t, err)
	assert.Equal(t, "digital", category.Slug)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, err := svc.UpdateCategory(context.Background(), 999, "数码", "digital")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), 999), ErrCategoryNotFound)
}
