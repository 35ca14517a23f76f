package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"smartbooking/internal/domain"
	"smartbooking/internal/pkg/reslock"
	"smartbooking/internal/pkg/timeutil"
	"smartbooking/internal/policy"
)

// Service owns the booking lifecycle. Every mutating action passes through
// here: it checks conflicts, consults the resource's policies, persists the
// change and appends to the audit trail.
type Service struct {
	bookings  BookingRepository
	resources ResourceRepository
	audit     AuditAppender
	payments  PaymentRecorder
	notifs    NotificationSender
	locks     *reslock.Locker
	now       func() time.Time
}

func NewService(
	bookings BookingRepository,
	resources ResourceRepository,
	audit AuditAppender,
	payments PaymentRecorder,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:  bookings,
		resources: resources,
		audit:     audit,
		payments:  payments,
		notifs:    notifs,
		locks:     reslock.New(),
		now:       time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.StartTime.Before(today) || !req.EndTime.After(now) {
		return nil, ErrValidation
	}

	resource, err := s.resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Admission control: the availability check and the insert run under the
	// resource's lock so two concurrent creates cannot both pass the check.
	s.locks.Lock(req.ResourceID)
	defer s.locks.Unlock(req.ResourceID)

	cnt, err := s.bookings.CountOverlapping(ctx, req.ResourceID, req.StartTime, req.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrConflict
	}

	price := policy.Price(
		resource.BasePricePerHour,
		req.StartTime, req.EndTime,
		policy.ParsePricingKey(resource.PricingPolicyKey),
	)
	status := policy.InitialStatus(policy.ParseApprovalKey(resource.ApprovalPolicyKey))

	b := &domain.Booking{
		ResourceID: req.ResourceID,
		UserID:     req.UserID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Price:      price,
		Status:     status,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
			// no-overbooking constraint: the database is the last line of
			// defence when the service lock is bypassed (e.g. multiple
			// instances sharing one Postgres)
			return nil, ErrConflict
		}
		return nil, err
	}

	details := fmt.Sprintf("booking %d created for resource %d [%s - %s]",
		b.ID, b.ResourceID, timeutil.Format(b.StartTime), timeutil.Format(b.EndTime))
	if status == domain.BookingApproved {
		details += ", auto-approved"
	} else {
		details += ", awaiting approval"
	}
	if err := s.audit.Append(ctx, req.UserID, domain.AuditCreate, details); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyBookingCreated(ctx, b.UserID, b.ID, b.Status)
	}

	return b, nil
}

func (s *Service) Approve(ctx context.Context, actorID int64, actorRole string, bookingID int64) (*domain.Booking, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, actorID, bookingID, domain.BookingApproved, domain.AuditApprove, "approved")
}

func (s *Service) Reject(ctx context.Context, actorID int64, actorRole string, bookingID int64) (*domain.Booking, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, actorID, bookingID, domain.BookingRejected, domain.AuditReject, "rejected")
}

func (s *Service) Pay(ctx context.Context, actorID int64, bookingID int64, method string) (*domain.Booking, error) {
	if method == "" {
		return nil, ErrValidation
	}

	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != actorID {
		return nil, ErrForbidden
	}
	if !domain.CanTransition(b.Status, domain.BookingPaid) {
		return nil, ErrStateConflict
	}

	ok, err := s.bookings.UpdateStatusCAS(ctx, bookingID, b.Status, domain.BookingPaid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStateConflict
	}

	if err := s.payments.RecordCharge(ctx, bookingID, b.Price, method); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("booking %d paid %.2f via %s", bookingID, b.Price, method)
	if err := s.audit.Append(ctx, actorID, domain.AuditPay, details); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyStatusChanged(ctx, b.UserID, bookingID, b.Status, domain.BookingPaid)
	}

	b.Status = domain.BookingPaid
	return b, nil
}

// Cancel ends a booking. A PAID booking cancelled under a FLEXIBLE policy
// before its start time becomes REFUNDED; every other permitted case becomes
// CANCELLED. A cancellation without refund is still a success, not an error.
func (s *Service) Cancel(ctx context.Context, actorID int64, actorRole string, bookingID int64) (*domain.Booking, bool, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, false, ErrForbidden
	}
	if !domain.CanTransition(b.Status, domain.BookingCancelled) {
		return nil, false, ErrStateConflict
	}

	resource, err := s.resources.GetByID(ctx, b.ResourceID)
	if err != nil {
		return nil, false, err
	}

	target := domain.BookingCancelled
	refunded := policy.RefundEligible(
		policy.ParseCancellationKey(resource.CancellationPolicyKey),
		b.Status, b.StartTime, s.now(),
	)
	if refunded {
		target = domain.BookingRefunded
	}

	ok, err := s.bookings.UpdateStatusCAS(ctx, bookingID, b.Status, target)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrStateConflict
	}

	details := fmt.Sprintf("booking %d cancelled", bookingID)
	if refunded {
		details = fmt.Sprintf("booking %d cancelled, refunded %.2f", bookingID, b.Price)
		if err := s.payments.RecordRefund(ctx, bookingID, b.Price); err != nil {
			return nil, false, err
		}
	}
	if err := s.audit.Append(ctx, actorID, domain.AuditCancel, details); err != nil {
		return nil, false, err
	}

	if s.notifs != nil {
		s.notifs.NotifyStatusChanged(ctx, b.UserID, bookingID, b.Status, target)
	}

	b.Status = target
	return b, refunded, nil
}

// AdminUpdate moves a non-terminal booking to a new range, re-running the
// conflict check (excluding the booking itself) and the pricing engine.
func (s *Service) AdminUpdate(ctx context.Context, actorID int64, actorRole string, bookingID int64, newStart, newEnd time.Time) (*domain.Booking, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if !newEnd.After(newStart) {
		return nil, ErrValidation
	}

	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, ErrStateConflict
	}

	resource, err := s.resources.GetByID(ctx, b.ResourceID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(b.ResourceID)
	defer s.locks.Unlock(b.ResourceID)

	cnt, err := s.bookings.CountOverlapping(ctx, b.ResourceID, newStart, newEnd, bookingID)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrConflict
	}

	price := policy.Price(
		resource.BasePricePerHour,
		newStart, newEnd,
		policy.ParsePricingKey(resource.PricingPolicyKey),
	)

	ok, err := s.bookings.UpdateRange(ctx, bookingID, b.Status, newStart, newEnd, price)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStateConflict
	}

	details := fmt.Sprintf("booking %d moved to [%s - %s], price %.2f",
		bookingID, timeutil.Format(newStart), timeutil.Format(newEnd), price)
	if err := s.audit.Append(ctx, actorID, domain.AuditAdminUpdate, details); err != nil {
		return nil, err
	}

	b.StartTime = newStart
	b.EndTime = newEnd
	b.Price = price
	return b, nil
}

// AdminDelete removes the booking from every active view; audit entries
// referencing it are retained.
func (s *Service) AdminDelete(ctx context.Context, actorID int64, actorRole string, bookingID int64) error {
	if actorRole != string(domain.RoleAdmin) {
		return ErrForbidden
	}

	if err := s.bookings.SoftDelete(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	details := fmt.Sprintf("booking %d deleted by admin", bookingID)
	return s.audit.Append(ctx, actorID, domain.AuditAdminDelete, details)
}

func (s *Service) ListMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListPendingBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListPending(ctx)
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.loadBooking(ctx, bookingID)
}

// transition performs a CAS status change for approve/reject.
func (s *Service) transition(ctx context.Context, actorID, bookingID int64, target domain.BookingStatus, action domain.AuditAction, verb string) (*domain.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(b.Status, target) {
		return nil, ErrStateConflict
	}

	ok, err := s.bookings.UpdateStatusCAS(ctx, bookingID, b.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStateConflict
	}

	details := fmt.Sprintf("booking %d %s", bookingID, verb)
	if err := s.audit.Append(ctx, actorID, action, details); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyStatusChanged(ctx, b.UserID, bookingID, b.Status, target)
	}

	b.Status = target
	return b, nil
}

func (s *Service) loadBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
