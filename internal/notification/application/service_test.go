package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/notification/domain"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
)

type fakeNotificationRepository struct {
	notifications []*domain.Notification
	nextID        uint
}

func (f *fakeNotificationRepository) Save(_ context.Context, n *domain.Notification) error {
	if n.ID == 0 {
		f.nextID++
		n.ID = f.nextID
		f.notifications = append(f.notifications, n)
	}
	return nil
}

func (f *fakeNotificationRepository) ListByUser(_ context.Context, userID uint, _, _ int) ([]*domain.Notification, int64, error) {
	var out []*domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepository) ExistsForOrder(_ context.Context, orderNo string) (bool, error) {
	for _, n := range f.notifications {
		if n.OrderNo == orderNo {
			return true, nil
		}
	}
	return false, nil
}

type fakeSender struct {
	sent []uint
	err  error
}

func (f *fakeSender) Send(_ context.Context, n *domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n.ID)
	return nil
}

func event(orderNo string) *orderdomain.OrderCreatedEvent {
	return &orderdomain.OrderCreatedEvent{
		OrderNo:     orderNo,
		UserID:      1,
		TotalAmount: "497.00",
		ItemCount:   2,
		CreatedAt:   time.Now(),
	}
}

func TestHandleOrderCreated(t *testing.T) {
	repo := &fakeNotificationRepository{}
	s := &fakeSender{}
	svc := NewNotificationApplicationService(repo, s)

	require.NoError(t, svc.HandleOrderCreated(context.Background(), event("ORD-1")))

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, domain.StatusSent, repo.notifications[0].Status)
	assert.Equal(t, "ORD-1", repo.notifications[0].OrderNo)
	assert.Len(t, s.sent, 1)
}

func TestHandleOrderCreatedIsIdempotent(t *testing.T) {
	repo := &fakeNotificationRepository{}
	s := &fakeSender{}
	svc := NewNotificationApplicationService(repo, s)
	ctx := context.Background()

	require.NoError(t, svc.HandleOrderCreated(ctx, event("ORD-1")))
	require.NoError(t, svc.HandleOrderCreated(ctx, event("ORD-1")))

	assert.Len(t, repo.notifications, 1)
	assert.Len(t, s.sent, 1)
}

func TestHandleOrderCreatedSendFailureMarksFailed(t *testing.T) {
	repo := &fakeNotificationRepository{}
	s := &fakeSender{err: errors.New("smtp down")}
	svc := NewNotificationApplicationService(repo, s)

	require.NoError(t, svc.HandleOrderCreated(context.Background(), event("ORD-1")))

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, domain.StatusFailed, repo.notifications[0].Status)
}

func TestListNotifications(t *testing.T) {
	repo := &fakeNotificationRepository{}
	svc := NewNotificationApplicationService(repo, &fakeSender{})
	ctx := context.Background()

	require.NoError(t, svc.HandleOrderCreated(ctx, event("ORD-1")))
	require.NoError(t, svc.HandleOrderCreated(ctx, event("ORD-2")))

	notifications, p, err := svc.ListNotifications(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, int64(2), p.Total)
}
