package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/agrimap/market/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Region = strings.ToLower(strings.TrimSpace(p.Region))

	if p.Name == "" || p.Price <= 0 || p.QuantityAvailable < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	filter.Region = strings.ToLower(strings.TrimSpace(filter.Region))
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(ctx, filter)
}

// SeedIfEmpty loads the sample catalog on first boot only.
func (s *Service) SeedIfEmpty(ctx context.Context, log *slog.Logger) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, p := range SampleProducts {
		if _, err := s.repo.Create(ctx, p); err != nil {
			return err
		}
	}
	log.Info("sample catalog seeded", slog.Int("products", len(SampleProducts)))
	return nil
}
