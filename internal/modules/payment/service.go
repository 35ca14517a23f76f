package payment

import (
	"context"

	"github.com/google/uuid"

	"smartbooking/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

// Service writes the payment ledger. There is no processor integration:
// a charge or refund is recorded as already settled, tagged with a generated
// reference for reconciliation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RecordCharge(ctx context.Context, bookingID int64, amount float64, method string) error {
	return s.repo.Create(ctx, &domain.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Kind:      domain.PaymentCharge,
		Reference: uuid.NewString(),
	})
}

func (s *Service) RecordRefund(ctx context.Context, bookingID int64, amount float64) error {
	return s.repo.Create(ctx, &domain.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Kind:      domain.PaymentRefund,
		Reference: uuid.NewString(),
	})
}

func (s *Service) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return s.repo.ListByBooking(ctx, bookingID)
}
