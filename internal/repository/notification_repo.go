package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Message   string    `gorm:"column:message;type:text"`
	IsRead    bool      `gorm:"column:is_read"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		UserID:  n.UserID,
		Message: n.Message,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	var rows []notificationModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}
