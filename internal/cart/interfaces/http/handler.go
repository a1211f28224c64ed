package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/response"
)

// CartHandler 购物车 HTTP 接口。所有路由都要求登录，购物车归属当前会话用户。
type CartHandler struct {
	cart    *application.CartApplicationService
	catalog *catalogapp.CatalogApplicationService
	metrics *metrics.Metrics
}

func NewCartHandler(cart *application.CartApplicationService, catalog *catalogapp.CatalogApplicationService, m *metrics.Metrics) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, metrics: m}
}

// RegisterRoutes 注册购物车路由，需在带认证中间件的分组下调用
func (h *CartHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:product_id", h.SetQuantity)
		cart.DELETE("/items/:product_id", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

// cartView 带派生汇总的购物车响应
type cartView struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

func newCartView(c *domain.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartView{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	session := authhttp.SessionFromContext(c)
	cart, err := h.cart.GetCart(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, "failed to load cart")
		return
	}
	response.Success(c, newCartView(cart))
}

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalogapp.ErrProductNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "PRODUCT_NOT_FOUND")
			return
		}
		response.Error(c, "failed to load product")
		return
	}

	snapshot := domain.ProductSnapshot{
		ProductID:     product.ID,
		Name:          product.Name,
		ImagePath:     product.ImagePath,
		CategoryLabel: product.Category.Name,
		UnitPrice:     product.Price,
		StockLimit:    product.Stock,
	}

	cart, err := h.cart.AddItem(c.Request.Context(), session.UserID, snapshot, req.Quantity)
	if err != nil {
		response.Error(c, "failed to update cart")
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	response.Success(c, newCartView(cart))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	cart, err := h.cart.SetQuantity(c.Request.Context(), session.UserID, productID, req.Quantity)
	if err != nil {
		response.Error(c, "failed to update cart")
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("set_quantity").Inc()
	response.Success(c, newCartView(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	cart, err := h.cart.RemoveItem(c.Request.Context(), session.UserID, productID)
	if err != nil {
		response.Error(c, "failed to update cart")
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	response.Success(c, newCartView(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	if err := h.cart.ClearCart(c.Request.Context(), session.UserID); err != nil {
		response.Error(c, "failed to clear cart")
		return
	}
	h.metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	response.Success(c, newCartView(domain.NewCart(session.UserID)))
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "INVALID_REQUEST")
		return 0, false
	}
	return uint(id), true
}
