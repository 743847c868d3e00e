package app

import (
	"context"

	"github.com/agrimap/market/internal/cart/domain"
)

// Ledger is the persisted collection of cart lines across all partitions.
// AddQuantity must be an atomic increment-or-insert so concurrent identical
// adds never lose an update; the service issues at most one ledger call per
// mutation step.
type Ledger interface {
	AddQuantity(ctx context.Context, p domain.Partition, productID string, qty int) (domain.CartLine, error)
	SetQuantity(ctx context.Context, p domain.Partition, productID string, qty int) error
	DeleteLine(ctx context.Context, p domain.Partition, productID string) (int64, error)
	ListLines(ctx context.Context, p domain.Partition) ([]domain.CartLine, error)
	DeletePartition(ctx context.Context, p domain.Partition) error
}

type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}
