package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/pkg/response"
)

// CatalogHandler 商品目录公开接口：浏览商品与类目，无需登录
type CatalogHandler struct {
	svc *application.CatalogApplicationService
}

func NewCatalogHandler(svc *application.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// RegisterRoutes 注册公开目录路由
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
	r.GET("/categories", h.ListCategories)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	products, p, err := h.svc.ListProducts(c.Request.Context(), application.ListQuery{
		Search:     c.Query("search"),
		CategoryID: uint(categoryID),
		Sort:       c.Query("sort"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		response.Error(c, "failed to list products")
		return
	}
	response.Paginated(c, products, p.Page, p.PageSize, p.Total)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "INVALID_REQUEST")
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "PRODUCT_NOT_FOUND")
			return
		}
		response.Error(c, "failed to load product")
		return
	}
	response.Success(c, product)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	categories, p, err := h.svc.ListCategories(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, "failed to list categories")
		return
	}
	response.Paginated(c, categories, p.Page, p.PageSize, p.Total)
}
