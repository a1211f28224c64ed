package domain

// ProductSnapshot 加入购物车时捕获的商品快照，此后不再随商品目录变化
type ProductSnapshot struct {
	ProductID     uint    `json:"product_id"`
	Name          string  `json:"name"`
	ImagePath     string  `json:"image_path"`
	CategoryLabel string  `json:"category_label"`
	UnitPrice     float64 `json:"unit_price"`
	StockLimit    int     `json:"stock_limit"`
}

// LineItem 购物车行项目
type LineItem struct {
	ProductID     uint    `json:"product_id"`
	Name          string  `json:"name"`
	ImagePath     string  `json:"image_path"`
	CategoryLabel string  `json:"category_label"`
	UnitPrice     float64 `json:"unit_price"`
	StockLimit    int     `json:"stock_limit"`
	Quantity      int     `json:"quantity"`
}

// Subtotal 行小计
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Cart 购物车聚合。每个 product_id 至多一个行项目，保持首次加入的顺序。
// 所有操作对任意输入都是全函数：数量 <= 0 与未知 product_id 均为定义行为而非错误。
type Cart struct {
	UserID uint       `json:"user_id"`
	Items  []LineItem `json:"items"`
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	return &Cart{UserID: userID}
}

// AddItem 加入商品。已存在时数量累加（merge-on-duplicate），否则按快照追加到末尾。
func (c *Cart) AddItem(p ProductSnapshot, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ProductID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		ProductID:     p.ProductID,
		Name:          p.Name,
		ImagePath:     p.ImagePath,
		CategoryLabel: p.CategoryLabel,
		UnitPrice:     p.UnitPrice,
		StockLimit:    p.StockLimit,
		Quantity:      quantity,
	})
}

// SetQuantity 将行项目数量设置为给定值（绝对值，非增量）。
// quantity <= 0 等价于 RemoveItem；product_id 不存在时为 no-op，不会创建新行。
// 不做 StockLimit 校验：聚合信任调用方。
func (c *Cart) SetQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem 删除行项目，不存在时为 no-op
func (c *Cart) RemoveItem(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear 无条件清空
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems 商品总件数，空购物车为 0
func (c *Cart) TotalItems() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 按快照单价计算的总价，空购物车为 0。不做货币舍入，展示层负责格式化。
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Find 按 product_id 查找行项目
func (c *Cart) Find(productID uint) (LineItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
