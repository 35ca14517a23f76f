package domain

import "time"

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
	BookingRefunded  BookingStatus = "refunded"
)

// ActiveStatuses are the statuses that occupy a resource's schedule.
// The conflict detector and the availability query must agree on this set.
var ActiveStatuses = []BookingStatus{BookingRequested, BookingApproved, BookingPaid}

func (s BookingStatus) IsActive() bool {
	return s == BookingRequested || s == BookingApproved || s == BookingPaid
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingRejected || s == BookingCancelled || s == BookingRefunded
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingRequested: {BookingApproved, BookingRejected, BookingCancelled},
	BookingApproved:  {BookingPaid, BookingCancelled},
	BookingPaid:      {BookingCancelled, BookingRefunded},
	BookingRejected:  {},
	BookingCancelled: {},
	BookingRefunded:  {},
}

// CanTransition reports whether the lifecycle allows from -> to.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID         int64         `json:"id"`
	ResourceID int64         `json:"resource_id" validate:"required"`
	UserID     int64         `json:"user_id" validate:"required"`
	StartTime  time.Time     `json:"start_time" validate:"required"`
	EndTime    time.Time     `json:"end_time" validate:"required"`
	Price      float64       `json:"price" validate:"gte=0"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Resource *Resource `json:"resource,omitempty"`
}
