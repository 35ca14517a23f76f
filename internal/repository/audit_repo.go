package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
)

// AuditLogRepository is append-only: it deliberately exposes no update or
// delete methods.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

type auditLogModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Action    string    `gorm:"column:action"`
	Details   string    `gorm:"column:details;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

func toDomainAuditEntry(m auditLogModel) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    domain.AuditAction(m.Action),
		Details:   m.Details,
		CreatedAt: m.CreatedAt,
	}
}

func (r *AuditLogRepository) Append(ctx context.Context, e *domain.AuditLogEntry) error {
	m := auditLogModel{
		UserID:    e.UserID,
		Action:    string(e.Action),
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	return nil
}

// List returns entries in insertion order, oldest first.
func (r *AuditLogRepository) List(ctx context.Context) ([]domain.AuditLogEntry, error) {
	var rows []auditLogModel
	tx := r.db.WithContext(ctx).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.AuditLogEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAuditEntry(m))
	}
	return out, nil
}

func (r *AuditLogRepository) ListByUser(ctx context.Context, userID int64) ([]domain.AuditLogEntry, error) {
	var rows []auditLogModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.AuditLogEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAuditEntry(m))
	}
	return out, nil
}
