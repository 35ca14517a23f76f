package booking

import (
	"context"
	"time"

	"smartbooking/internal/domain"
)

// BookingRepository defines the persistence operations the lifecycle needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, resourceID int64, start, end time.Time, excludeBookingID int64) (int64, error)
	UpdateStatusCAS(ctx context.Context, bookingID int64, expected, next domain.BookingStatus) (bool, error)
	UpdateRange(ctx context.Context, bookingID int64, expected domain.BookingStatus, start, end time.Time, price float64) (bool, error)
	SoftDelete(ctx context.Context, bookingID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListPending(ctx context.Context) ([]domain.Booking, error)
}

type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// AuditAppender records one entry per successful mutation. Append failures
// surface to the caller; the trail is never silently dropped.
type AuditAppender interface {
	Append(ctx context.Context, userID int64, action domain.AuditAction, details string) error
}

type PaymentRecorder interface {
	RecordCharge(ctx context.Context, bookingID int64, amount float64, method string) error
	RecordRefund(ctx context.Context, bookingID int64, amount float64) error
}

// NotificationSender is best-effort: delivery failure never fails a booking
// operation.
type NotificationSender interface {
	NotifyStatusChanged(ctx context.Context, userID, bookingID int64, from, to domain.BookingStatus)
	NotifyBookingCreated(ctx context.Context, userID, bookingID int64, status domain.BookingStatus)
}
