package policy

import (
	"time"

	"smartbooking/internal/domain"
)

type CancellationKey string

const (
	CancellationFlexible CancellationKey = "FLEXIBLE"
	CancellationStrict   CancellationKey = "STRICT"
)

func ParseCancellationKey(key string) CancellationKey {
	if CancellationKey(key) == CancellationStrict {
		return CancellationStrict
	}
	return CancellationFlexible
}

// RefundEligible reports whether cancelling a booking in the given status at
// time now yields a refund. Only PAID bookings can refund: FLEXIBLE grants a
// full refund when the cancellation lands strictly before the booking's
// start, STRICT never refunds.
func RefundEligible(key CancellationKey, status domain.BookingStatus, start, now time.Time) bool {
	if status != domain.BookingPaid {
		return false
	}
	return key == CancellationFlexible && now.Before(start)
}
