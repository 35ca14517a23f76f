package domain

import "time"

type ResourceType string

const (
	ResourceRoom      ResourceType = "room"
	ResourceEquipment ResourceType = "equipment"
	ResourceStudio    ResourceType = "studio"
)

// Resource is read-only to the booking engine; only administrative
// tooling (cmd/seed) writes it.
type Resource struct {
	ID                    int64        `json:"id"`
	Name                  string       `json:"name" validate:"required"`
	Type                  ResourceType `json:"type" validate:"required"`
	BasePricePerHour      float64      `json:"base_price_per_hour" validate:"required,gte=0"`
	PricingPolicyKey      string       `json:"pricing_policy_key"`
	ApprovalPolicyKey     string       `json:"approval_policy_key"`
	CancellationPolicyKey string       `json:"cancellation_policy_key"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}
