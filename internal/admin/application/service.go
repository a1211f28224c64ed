package application

import (
	"context"
	"errors"

	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// DashboardStats 管理端概览统计
type DashboardStats struct {
	TotalUsers    int64  `json:"total_users"`
	TotalOrders   int64  `json:"total_orders"`
	PendingOrders int64  `json:"pending_orders"`
	Revenue       string `json:"revenue"`
}

// AdminApplicationService 管理端应用服务：用户管理与概览统计。
// 商品/类目/订单的管理操作直接复用各自的应用服务。
type AdminApplicationService struct {
	users  userdomain.UserRepository
	orders orderdomain.OrderRepository
}

func NewAdminApplicationService(users userdomain.UserRepository, orders orderdomain.OrderRepository) *AdminApplicationService {
	return &AdminApplicationService{users: users, orders: orders}
}

// Dashboard 汇总概览统计
func (s *AdminApplicationService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	_, totalUsers, err := s.users.List(ctx, 0, 1)
	if err != nil {
		return nil, err
	}
	_, totalOrders, err := s.orders.List(ctx, orderdomain.OrderQuery{Limit: 1})
	if err != nil {
		return nil, err
	}
	_, pendingOrders, err := s.orders.List(ctx, orderdomain.OrderQuery{Status: orderdomain.StatusPending, Limit: 1})
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalUsers:    totalUsers,
		TotalOrders:   totalOrders,
		PendingOrders: pendingOrders,
		Revenue:       revenue.StringFixed(2),
	}, nil
}

// ListUsers 分页列出用户
func (s *AdminApplicationService) ListUsers(ctx context.Context, page, pageSize int) ([]*userdomain.User, *utils.Pagination, error) {
	p := utils.NewPagination(page, pageSize, 0)
	users, total, err := s.users.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return nil, nil, err
	}
	return users, utils.NewPagination(page, pageSize, total), nil
}

// UpdateUserRole 调整用户角色
func (s *AdminApplicationService) UpdateUserRole(ctx context.Context, userID uint, role userdomain.Role) (*userdomain.User, error) {
	if role != userdomain.RoleCustomer && role != userdomain.RoleAdmin {
		return nil, ErrInvalidRole
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 删除用户
func (s *AdminApplicationService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.users.GetByID(ctx, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
