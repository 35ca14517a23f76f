package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smartbooking/internal/domain"
)

var ErrNotFound = errors.New("resource not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	List(ctx context.Context) ([]domain.Resource, error)
}

// Service exposes the bookable resource catalog. Resources are seeded by
// operators; the engine only reads them.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListResources(ctx context.Context) ([]domain.Resource, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}
