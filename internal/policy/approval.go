package policy

import "smartbooking/internal/domain"

type ApprovalKey string

const (
	ApprovalAuto          ApprovalKey = "AUTO"
	ApprovalAdminRequired ApprovalKey = "ADMIN_REQUIRED"
)

func ParseApprovalKey(key string) ApprovalKey {
	if ApprovalKey(key) == ApprovalAdminRequired {
		return ApprovalAdminRequired
	}
	return ApprovalAuto
}

// InitialStatus determines a new booking's status from the resource's
// approval policy.
func InitialStatus(key ApprovalKey) domain.BookingStatus {
	if key == ApprovalAdminRequired {
		return domain.BookingRequested
	}
	return domain.BookingApproved
}
