package mysql

import (
	"context"

	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/order/application"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

// txRunner 在单个数据库事务中同时提供订单仓储与商品仓储。
// 库存扣减与订单落库要么同时生效，要么一起回滚。
type txRunner struct{ db *db.DB }

func NewTxRunner(d *db.DB) application.TxRunner {
	return &txRunner{db: d}
}

func (r *txRunner) RunInTx(ctx context.Context, fn func(orders orderdomain.OrderRepository, products catalogdomain.ProductRepository) error) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(NewOrderRepository(tx), catalogmysql.NewProductRepository(tx))
	})
}
