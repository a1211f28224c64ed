package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidInput       = errors.New("invalid input")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOrderNotOwnedByYou = errors.New("order belongs to another user")
)

// TxRunner 在单个事务中执行订单创建与库存扣减
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(orders domain.OrderRepository, products catalogdomain.ProductRepository) error) error
}

// OrderApplicationService 订单应用服务：结账下单、订单查询与状态管理
type OrderApplicationService struct {
	orders    domain.OrderRepository
	tx        TxRunner
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

func NewOrderApplicationService(
	orders domain.OrderRepository,
	tx TxRunner,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *OrderApplicationService {
	return &OrderApplicationService{
		orders:    orders,
		tx:        tx,
		publisher: publisher,
		metrics:   m,
	}
}

// PlaceOrder 结账下单。
// 单价以下单时刻服务端商品价格为准，购物车快照价格仅用于展示；
// 库存扣减与订单落库在同一事务内完成，任一商品库存不足则整单回滚。
func (s *OrderApplicationService) PlaceOrder(ctx context.Context, userID uint, cart *cartdomain.Cart, shippingAddress, paymentMethod string) (*domain.Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, ErrInvalidInput
	}

	var order *domain.Order
	err := s.tx.RunInTx(ctx, func(orders domain.OrderRepository, products catalogdomain.ProductRepository) error {
		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			product, err := products.GetByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidInput
				}
				return err
			}
			if err := products.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				if errors.Is(err, catalogdomain.ErrInsufficientStock) {
					return ErrInsufficientStock
				}
				return err
			}
			items = append(items, domain.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: decimal.NewFromFloat(product.Price),
				Quantity:  line.Quantity,
			})
		}

		order = domain.NewOrder(newOrderNo(), userID, items, shippingAddress, paymentMethod)
		return orders.Create(ctx, order)
	})
	if err != nil {
		s.metrics.CheckoutFailures.Inc()
		return nil, err
	}

	s.metrics.OrdersTotal.Inc()
	logger.Info(ctx, "order placed",
		"order_no", order.OrderNo,
		"user_id", userID,
		"total_amount", order.TotalAmount.String(),
	)

	// 事件发布失败不回滚订单，下游依赖补偿消费
	event := &domain.OrderCreatedEvent{
		OrderNo:     order.OrderNo,
		UserID:      userID,
		TotalAmount: order.TotalAmount.String(),
		ItemCount:   len(order.Items),
		CreatedAt:   time.Now(),
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		logger.Error(ctx, "failed to publish order created event", "order_no", order.OrderNo, "error", err)
	}

	return order, nil
}

// GetOrder 获取订单详情，校验归属
func (s *OrderApplicationService) GetOrder(ctx context.Context, userID, orderID uint) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotOwnedByYou
	}
	return order, nil
}

// ListOrders 分页列出用户自己的订单
func (s *OrderApplicationService) ListOrders(ctx context.Context, userID uint, page, pageSize int) ([]*domain.Order, *utils.Pagination, error) {
	p := utils.NewPagination(page, pageSize, 0)
	orders, total, err := s.orders.List(ctx, domain.OrderQuery{
		UserID: userID,
		Offset: p.Offset(),
		Limit:  p.Limit(),
	})
	if err != nil {
		return nil, nil, err
	}
	return orders, utils.NewPagination(page, pageSize, total), nil
}

// ListAllOrders 管理端列出所有订单，可按状态过滤
func (s *OrderApplicationService) ListAllOrders(ctx context.Context, status domain.Status, page, pageSize int) ([]*domain.Order, *utils.Pagination, error) {
	p := utils.NewPagination(page, pageSize, 0)
	orders, total, err := s.orders.List(ctx, domain.OrderQuery{
		Status: status,
		Offset: p.Offset(),
		Limit:  p.Limit(),
	})
	if err != nil {
		return nil, nil, err
	}
	return orders, utils.NewPagination(page, pageSize, total), nil
}

// UpdateStatus 管理端更新订单状态，遵循状态机
func (s *OrderApplicationService) UpdateStatus(ctx context.Context, orderID uint, target domain.Status) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}
	if err := s.orders.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, err
	}
	order.Status = target
	return order, nil
}

func newOrderNo() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:18])
}
