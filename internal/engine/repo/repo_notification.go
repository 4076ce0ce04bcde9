package repo

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

type INotificationRepository interface {
	CreateNotification(notification *model.Notification) error
	// GetNotification returns (nil, nil) when no such row exists.
	GetNotification(notificationId string) (*model.Notification, error)
	// ListByUser returns the recipient's inbox, newest first.
	ListByUser(userId string, unreadOnly bool, limit int) ([]model.Notification, error)
	MarkRead(notificationId string) error
	// MarkAllRead flips every unread row of the user and reports how
	// many were affected.
	MarkAllRead(userId string) (int64, error)
	CountUnread(userId string) (int64, error)
	UpdateMetadata(notificationId string, metadata datatypes.JSON) error
}

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) CreateNotification(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepo) GetNotification(notificationId string) (*model.Notification, error) {
	var notification model.Notification
	return firstOrNil(r.db.Where("notification_id = ?", notificationId), &notification)
}

func (r *NotificationRepo) ListByUser(userId string, unreadOnly bool, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.db.Where("user_id = ?", userId)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("notification_id DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepo) MarkRead(notificationId string) error {
	return r.db.Model(&model.Notification{}).
		Where("notification_id = ?", notificationId).
		Update("is_read", true).Error
}

func (r *NotificationRepo) MarkAllRead(userId string) (int64, error) {
	result := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepo) CountUnread(userId string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepo) UpdateMetadata(notificationId string, metadata datatypes.JSON) error {
	return r.db.Model(&model.Notification{}).
		Where("notification_id = ?", notificationId).
		Update("metadata", metadata).Error
}
