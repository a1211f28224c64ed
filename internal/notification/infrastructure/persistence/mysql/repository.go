package mysql

import (
	"context"

	"github.com/wyfcoding/storefront/internal/notification/domain"
	"gorm.io/gorm"
)

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Save(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*domain.Notification, int64, error) {
	var notifications []*domain.Notification
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) ExistsForOrder(ctx context.Context, orderNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("order_no = ?", orderNo).Count(&count).Error
	return count > 0, err
}
