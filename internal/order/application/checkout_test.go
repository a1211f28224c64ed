package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"gorm.io/gorm"
)

type fakeOrderRepository struct {
	orders []*domain.Order
	nextID uint
}

func (f *fakeOrderRepository) Create(_ context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = f.nextID
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepository) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) GetByOrderNo(_ context.Context, orderNo string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) List(_ context.Context, q domain.OrderQuery) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if q.UserID != 0 && o.UserID != q.UserID {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepository) UpdateStatus(_ context.Context, id uint, status domain.Status) error {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) RevenueTotal(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range f.orders {
		if o.Status != domain.StatusCancelled {
			total = total.Add(o.TotalAmount)
		}
	}
	return total, nil
}

type fakeProductRepository struct {
	products map[uint]*catalogdomain.Product
}

func (f *fakeProductRepository) Save(_ context.Context, p *catalogdomain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepository) GetByID(_ context.Context, id uint) (*catalogdomain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepository) List(_ context.Context, _ catalogdomain.ProductQuery) ([]*catalogdomain.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepository) Delete(_ context.Context, id uint) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) AdjustStock(_ context.Context, id uint, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, catalogdomain.ErrInsufficientStock)
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("product %d: %w", id, catalogdomain.ErrInsufficientStock)
	}
	p.Stock += delta
	return nil
}

// fakeTxRunner 模拟事务语义：fn 出错时回滚库存与订单
type fakeTxRunner struct {
	orders   *fakeOrderRepository
	products *fakeProductRepository
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(domain.OrderRepository, catalogdomain.ProductRepository) error) error {
	stockBefore := make(map[uint]int, len(f.products.products))
	for id, p := range f.products.products {
		stockBefore[id] = p.Stock
	}
	ordersBefore := len(f.orders.orders)

	if err := fn(f.orders, f.products); err != nil {
		for id, stock := range stockBefore {
			f.products.products[id].Stock = stock
		}
		f.orders.orders = f.orders.orders[:ordersBefore]
		return err
	}
	return nil
}

type fakePublisher struct {
	events []*domain.OrderCreatedEvent
	err    error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, e *domain.OrderCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func newCheckoutFixture() (*OrderApplicationService, *fakeOrderRepository, *fakeProductRepository, *fakePublisher) {
	orders := &fakeOrderRepository{}
	products := &fakeProductRepository{products: map[uint]*catalogdomain.Product{}}
	publisher := &fakePublisher{}
	svc := NewOrderApplicationService(orders, &fakeTxRunner{orders: orders, products: products}, publisher, metrics.New("test"))
	return svc, orders, products, publisher
}

func addProduct(products *fakeProductRepository, id uint, name string, price float64, stock int) {
	p := &catalogdomain.Product{Name: name, Price: price, Stock: stock}
	p.ID = id
	products.products[id] = p
}

func cartWith(items ...cartdomain.LineItem) *cartdomain.Cart {
	return &cartdomain.Cart{UserID: 1, Items: items}
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc, orders, products, publisher := newCheckoutFixture()
	addProduct(products, 10, "键盘", 199.0, 5)
	addProduct(products, 20, "鼠标", 99.0, 5)

	cart := cartWith(
		cartdomain.LineItem{ProductID: 10, Quantity: 2, UnitPrice: 199.0},
		cartdomain.LineItem{ProductID: 20, Quantity: 1, UnitPrice: 99.0},
	)

	order, err := svc.PlaceOrder(context.Background(), 1, cart, "北京市海淀区", "alipay")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "497", order.TotalAmount.String())
	assert.Len(t, order.Items, 2)
	assert.NotEmpty(t, order.OrderNo)

	// 库存已扣减
	assert.Equal(t, 3, products.products[10].Stock)
	assert.Equal(t, 4, products.products[20].Stock)

	// 事件已发布
	require.Len(t, publisher.events, 1)
	assert.Equal(t, order.OrderNo, publisher.events[0].OrderNo)

	require.Len(t, orders.orders, 1)
}

func TestPlaceOrderUsesServerSidePrice(t *testing.T) {
	svc, _, products, _ := newCheckoutFixture()
	addProduct(products, 10, "键盘", 299.0, 5)

	// 购物车快照里是旧价格，下单以服务端当前价格为准
	cart := cartWith(cartdomain.LineItem{ProductID: 10, Quantity: 1, UnitPrice: 199.0})

	order, err := svc.PlaceOrder(context.Background(), 1, cart, "上海市浦东新区", "wechat")
	require.NoError(t, err)
	assert.Equal(t, "299", order.TotalAmount.String())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _, _, _ := newCheckoutFixture()

	_, err := svc.PlaceOrder(context.Background(), 1, cartdomain.NewCart(1), "地址", "alipay")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.PlaceOrder(context.Background(), 1, nil, "地址", "alipay")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderMissingAddress(t *testing.T) {
	svc, _, products, _ := newCheckoutFixture()
	addProduct(products, 10, "键盘", 199.0, 5)

	cart := cartWith(cartdomain.LineItem{ProductID: 10, Quantity: 1})
	_, err := svc.PlaceOrder(context.Background(), 1, cart, "   ", "alipay")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, orders, products, publisher := newCheckoutFixture()
	addProduct(products, 10, "键盘", 199.0, 5)
	addProduct(products, 20, "鼠标", 99.0, 1)

	cart := cartWith(
		cartdomain.LineItem{ProductID: 10, Quantity: 2},
		cartdomain.LineItem{ProductID: 20, Quantity: 3},
	)

	_, err := svc.PlaceOrder(context.Background(), 1, cart, "地址", "alipay")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// 整单回滚，第一件商品的扣减也被还原
	assert.Equal(t, 5, products.products[10].Stock)
	assert.Equal(t, 1, products.products[20].Stock)
	assert.Empty(t, orders.orders)
	assert.Empty(t, publisher.events)
}

func TestPlaceOrderPublishFailureDoesNotFailOrder(t *testing.T) {
	svc, orders, products, publisher := newCheckoutFixture()
	publisher.err = errors.New("kafka down")
	addProduct(products, 10, "键盘", 199.0, 5)

	cart := cartWith(cartdomain.LineItem{ProductID: 10, Quantity: 1})
	order, err := svc.PlaceOrder(context.Background(), 1, cart, "地址", "alipay")

	require.NoError(t, err)
	assert.NotNil(t, order)
	require.Len(t, orders.orders, 1)
}

func TestGetOrderOwnership(t *testing.T) {
	svc, _, products, _ := newCheckoutFixture()
	addProduct(products, 10, "键盘", 199.0, 5)

	cart := cartWith(cartdomain.LineItem{ProductID: 10, Quantity: 1})
	order, err := svc.PlaceOrder(context.Background(), 1, cart, "地址", "alipay")
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNo, got.OrderNo)

	_, err = svc.GetOrder(context.Background(), 2, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotOwnedByYou)

	_, err = svc.GetOrder(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	svc, _, products, _ := newCheckoutFixture()
	addProduct(products, 10, "键盘", 199.0, 5)

	cart := cartWith(cartdomain.LineItem{ProductID: 10, Quantity: 1})
	order, err := svc.PlaceOrder(context.Background(), 1, cart, "地址", "alipay")
	require.NoError(t, err)

	// PENDING 不能直接 SHIPPED
	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.StatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), order.ID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)

	// 终态后不可再迁移
	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.StatusCancelled)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
