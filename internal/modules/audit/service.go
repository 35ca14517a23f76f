package audit

import (
	"context"

	"smartbooking/internal/domain"
)

type Repository interface {
	Append(ctx context.Context, e *domain.AuditLogEntry) error
	List(ctx context.Context) ([]domain.AuditLogEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.AuditLogEntry, error)
}

// Service is the single write path for the audit trail. Callers pass the
// acting user, the action and a human-readable details line; timestamps and
// ordering come from the store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Append(ctx context.Context, userID int64, action domain.AuditAction, details string) error {
	return s.repo.Append(ctx, &domain.AuditLogEntry{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.AuditLogEntry, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.AuditLogEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}
