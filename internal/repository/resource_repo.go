package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

type resourceModel struct {
	ID                    int64     `gorm:"column:id;primaryKey"`
	Name                  string    `gorm:"column:name"`
	Type                  string    `gorm:"column:type"`
	BasePricePerHour      float64   `gorm:"column:base_price_per_hour"`
	PricingPolicyKey      string    `gorm:"column:pricing_policy_key"`
	ApprovalPolicyKey     string    `gorm:"column:approval_policy_key"`
	CancellationPolicyKey string    `gorm:"column:cancellation_policy_key"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (resourceModel) TableName() string { return "resources" }

func toDomainResource(m resourceModel) *domain.Resource {
	return &domain.Resource{
		ID:                    m.ID,
		Name:                  m.Name,
		Type:                  domain.ResourceType(m.Type),
		BasePricePerHour:      m.BasePricePerHour,
		PricingPolicyKey:      m.PricingPolicyKey,
		ApprovalPolicyKey:     m.ApprovalPolicyKey,
		CancellationPolicyKey: m.CancellationPolicyKey,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func toResourceModel(r *domain.Resource) resourceModel {
	return resourceModel{
		ID:                    r.ID,
		Name:                  r.Name,
		Type:                  string(r.Type),
		BasePricePerHour:      r.BasePricePerHour,
		PricingPolicyKey:      r.PricingPolicyKey,
		ApprovalPolicyKey:     r.ApprovalPolicyKey,
		CancellationPolicyKey: r.CancellationPolicyKey,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// Create exists for administrative seeding; the engine itself never writes
// resources.
func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	m := toResourceModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainResource(m)
	return nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	var m resourceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainResource(m), nil
}

func (r *ResourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	var rows []resourceModel
	tx := r.db.WithContext(ctx).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Resource, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainResource(m))
	}
	return out, nil
}
