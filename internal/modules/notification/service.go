package notification

import (
	"context"
	"fmt"
	"log"

	"smartbooking/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

// Service persists notifications and pushes them to connected clients.
// Delivery is best-effort: a failed store or push is logged and never fails
// the booking operation that triggered it.
type Service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) {
	msg := fmt.Sprintf("Booking #%d created, status: %s", bookingID, status)
	s.deliver(ctx, userID, msg)
}

func (s *Service) NotifyStatusChanged(ctx context.Context, userID, bookingID int64, from, to domain.BookingStatus) {
	msg := fmt.Sprintf("Booking #%d: %s -> %s", bookingID, from, to)
	s.deliver(ctx, userID, msg)
}

func (s *Service) deliver(ctx context.Context, userID int64, message string) {
	n := &domain.Notification{UserID: userID, Message: message}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification store failed for user %d: %v", userID, err)
		return
	}
	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
