package domain

import (
	"context"
	"errors"
)

// ErrInsufficientStock 库存不足或商品不存在导致的扣减失败
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductQuery 商品列表查询条件：分页/搜索/排序/类目过滤
type ProductQuery struct {
	Search     string
	CategoryID uint
	// price_asc, price_desc, newest；空值按主键升序
	Sort     string
	Offset   int
	Limit    int
}

type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, q ProductQuery) ([]*Product, int64, error)
	Delete(ctx context.Context, id uint) error
	// AdjustStock 在事务连接上按增量调整库存，库存不足时返回错误
	AdjustStock(ctx context.Context, id uint, delta int) error
}

type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context, offset, limit int) ([]*Category, int64, error)
	Delete(ctx context.Context, id uint) error
}
