package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	cartapp "github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/response"
)

// OrderHandler 订单 HTTP 接口。所有路由都要求登录。
type OrderHandler struct {
	orders *application.OrderApplicationService
	cart   *cartapp.CartApplicationService
}

func NewOrderHandler(orders *application.OrderApplicationService, cart *cartapp.CartApplicationService) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart}
}

// RegisterRoutes 注册订单路由，需在带认证中间件的分组下调用
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
	}
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// Checkout 结账：用当前购物车下单，成功后清空购物车。
// 清空只在下单成功后发生，失败时购物车原样保留以便重试。
func (h *OrderHandler) Checkout(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	cart, err := h.cart.GetCart(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, "failed to load cart")
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), session.UserID, cart, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyCart):
			response.ErrorWithStatus(c, http.StatusBadRequest, "cart is empty", "EMPTY_CART")
		case errors.Is(err, application.ErrInsufficientStock):
			response.ErrorWithStatus(c, http.StatusConflict, "insufficient stock", "INSUFFICIENT_STOCK")
		case errors.Is(err, application.ErrInvalidInput):
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid checkout request", "INVALID_REQUEST")
		default:
			response.Error(c, "failed to place order")
		}
		return
	}

	if err := h.cart.ClearCart(c.Request.Context(), session.UserID); err != nil {
		// 订单已生效，清空失败只记录不影响响应
		logger.Error(c.Request.Context(), "failed to clear cart after checkout",
			"user_id", session.UserID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}

	response.Created(c, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, p, err := h.orders.ListOrders(c.Request.Context(), session.UserID, page, pageSize)
	if err != nil {
		response.Error(c, "failed to list orders")
		return
	}
	response.Paginated(c, orders, p.Page, p.PageSize, p.Total)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	session := authhttp.SessionFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid order id", "INVALID_REQUEST")
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), session.UserID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOrderNotFound), errors.Is(err, application.ErrOrderNotOwnedByYou):
			response.ErrorWithStatus(c, http.StatusNotFound, "order not found", "ORDER_NOT_FOUND")
		default:
			response.Error(c, "failed to load order")
		}
		return
	}
	response.Success(c, order)
}
