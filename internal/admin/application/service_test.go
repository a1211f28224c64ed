package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users  map[uint]*userdomain.User
	nextID uint
}

func (f *fakeUserRepository) Save(_ context.Context, u *userdomain.User) error {
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uint) (*userdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) List(_ context.Context, _, _ int) ([]*userdomain.User, int64, error) {
	var out []*userdomain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

type fakeOrderRepository struct {
	orders []*orderdomain.Order
}

func (f *fakeOrderRepository) Create(_ context.Context, o *orderdomain.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepository) GetByID(_ context.Context, _ uint) (*orderdomain.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) GetByOrderNo(_ context.Context, _ string) (*orderdomain.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) List(_ context.Context, q orderdomain.OrderQuery) ([]*orderdomain.Order, int64, error) {
	var out []*orderdomain.Order
	for _, o := range f.orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepository) UpdateStatus(_ context.Context, _ uint, _ orderdomain.Status) error {
	return nil
}

func (f *fakeOrderRepository) RevenueTotal(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range f.orders {
		if o.Status != orderdomain.StatusCancelled {
			total = total.Add(o.TotalAmount)
		}
	}
	return total, nil
}

func newAdminFixture() (*AdminApplicationService, *fakeUserRepository, *fakeOrderRepository) {
	users := &fakeUserRepository{users: map[uint]*userdomain.User{}}
	orders := &fakeOrderRepository{}
	return NewAdminApplicationService(users, orders), users, orders
}

func TestDashboard(t *testing.T) {
	svc, users, orders := newAdminFixture()
	ctx := context.Background()

	require.NoError(t, users.Save(ctx, userdomain.NewUser("a@example.com", "hash", "A", userdomain.RoleCustomer)))
	require.NoError(t, users.Save(ctx, userdomain.NewUser("b@example.com", "hash", "B", userdomain.RoleAdmin)))
	orders.orders = []*orderdomain.Order{
		{Status: orderdomain.StatusPending, TotalAmount: decimal.NewFromFloat(100.50)},
		{Status: orderdomain.StatusPaid, TotalAmount: decimal.NewFromFloat(200.00)},
		{Status: orderdomain.StatusCancelled, TotalAmount: decimal.NewFromFloat(999.00)},
	}

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, "300.50", stats.Revenue)
}

func TestUpdateUserRole(t *testing.T) {
	svc, users, _ := newAdminFixture()
	ctx := context.Background()

	u := userdomain.NewUser("a@example.com", "hash", "A", userdomain.RoleCustomer)
	require.NoError(t, users.Save(ctx, u))

	updated, err := svc.UpdateUserRole(ctx, u.ID, userdomain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())

	_, err = svc.UpdateUserRole(ctx, u.ID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateUserRole(ctx, 999, userdomain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, users, _ := newAdminFixture()
	ctx := context.Background()

	u := userdomain.NewUser("a@example.com", "hash", "A", userdomain.RoleCustomer)
	require.NoError(t, users.Save(ctx, u))

	require.NoError(t, svc.DeleteUser(ctx, u.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, u.ID), ErrUserNotFound)
}
