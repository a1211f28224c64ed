package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	adminapp "github.com/wyfcoding/storefront/internal/admin/application"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	orderapp "github.com/wyfcoding/storefront/internal/order/application"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/response"
)

// AdminHandler 管理端 HTTP 接口：商品、类目、订单与用户的管理操作
type AdminHandler struct {
	admin   *adminapp.AdminApplicationService
	catalog *catalogapp.CatalogApplicationService
	orders  *orderapp.OrderApplicationService
}

func NewAdminHandler(admin *adminapp.AdminApplicationService, catalog *catalogapp.CatalogApplicationService, orders *orderapp.OrderApplicationService) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog, orders: orders}
}

// RegisterRoutes 注册管理端路由，需在 AuthRequired + AdminRequired 分组下调用
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)

	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	categories := r.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	orders := r.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
	}

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.PUT("/:id/role", h.UpdateUserRole)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, "failed to load dashboard")
		return
	}
	response.Success(c, stats)
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImagePath   string  `json:"image_path"`
	CategoryID  uint    `json:"category_id"`
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req.Name, req.Description, req.Price, req.Stock, req.ImagePath, req.CategoryID)
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.Created(c, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, req.Name, req.Description, req.Price, req.Stock, req.ImagePath, req.CategoryID)
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.Created(c, category)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, req.Name, req.Slug)
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.Success(c, category)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := orderdomain.Status(c.Query("status"))

	orders, p, err := h.orders.ListAllOrders(c.Request.Context(), status, page, pageSize)
	if err != nil {
		response.Error(c, "failed to list orders")
		return
	}
	response.Paginated(c, orders, p.Page, p.PageSize, p.Total)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, orderdomain.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, orderapp.ErrOrderNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, "order not found", "ORDER_NOT_FOUND")
		case errors.Is(err, orderapp.ErrInvalidTransition):
			response.ErrorWithStatus(c, http.StatusConflict, "invalid status transition", "INVALID_TRANSITION")
		default:
			response.Error(c, "failed to update order status")
		}
		return
	}
	response.Success(c, order)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, p, err := h.admin.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, "failed to list users")
		return
	}
	response.Paginated(c, users, p.Page, p.PageSize, p.Total)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	user, err := h.admin.UpdateUserRole(c.Request.Context(), id, userdomain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, adminapp.ErrUserNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, "user not found", "USER_NOT_FOUND")
		case errors.Is(err, adminapp.ErrInvalidRole):
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid role", "INVALID_ROLE")
		default:
			response.Error(c, "failed to update user role")
		}
		return
	}
	response.Success(c, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, adminapp.ErrUserNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "user not found", "USER_NOT_FOUND")
			return
		}
		response.Error(c, "failed to delete user")
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

func (h *AdminHandler) writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrProductNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "PRODUCT_NOT_FOUND")
	case errors.Is(err, catalogapp.ErrCategoryNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, "category not found", "CATEGORY_NOT_FOUND")
	case errors.Is(err, catalogapp.ErrInvalidInput):
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid input", "INVALID_REQUEST")
	default:
		response.Error(c, "operation failed")
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "INVALID_REQUEST")
		return 0, false
	}
	return uint(id), true
}
