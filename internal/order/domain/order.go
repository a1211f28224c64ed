package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// 状态机：PENDING -> PAID -> SHIPPED -> COMPLETED，任一非终态可取消
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo 是否允许迁移到目标状态
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderItem 订单行项目。单价在下单时以服务端商品价格定格。
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint            `gorm:"column:product_id;not null" json:"product_id"`
	Name      string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

// Subtotal 行小计
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order 订单聚合
type Order struct {
	gorm.Model
	OrderNo         string          `gorm:"column:order_no;type:varchar(64);uniqueIndex;not null" json:"order_no"`
	UserID          uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	Status          Status          `gorm:"column:status;type:varchar(20);not null" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"column:shipping_address;type:varchar(500)" json:"shipping_address"`
	PaymentMethod   string          `gorm:"column:payment_method;type:varchar(50)" json:"payment_method"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string { return "orders" }

// NewOrder 创建待支付订单并计算总额
func NewOrder(orderNo string, userID uint, items []OrderItem, shippingAddress, paymentMethod string) *Order {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          StatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Items:           items,
	}
}
