package app

import (
	"context"

	"github.com/agrimap/market/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, filter domain.Filter) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
}
