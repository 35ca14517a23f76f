package schedule

import (
	"context"
	"time"

	"smartbooking/internal/domain"
)

type BookingLister interface {
	ListActiveInWindow(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.Booking, error)
}

type ResourceGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}
