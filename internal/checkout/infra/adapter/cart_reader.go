package adapter

import (
	"context"

	cartapp "github.com/agrimap/market/internal/cart/app"
	cartdomain "github.com/agrimap/market/internal/cart/domain"
	checkoutapp "github.com/agrimap/market/internal/checkout/app"
	checkoutdomain "github.com/agrimap/market/internal/checkout/domain"
)

// CartServiceReader exposes the cart ledger to checkout through its port.
type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func toPartition(owner checkoutdomain.Owner) cartdomain.Partition {
	return cartdomain.Partition{
		UserID:       owner.UserID,
		SessionToken: owner.SessionToken,
	}
}

func (r *CartServiceReader) List(ctx context.Context, owner checkoutdomain.Owner) ([]checkoutapp.Line, error) {
	enriched, err := r.svc.List(ctx, toPartition(owner))
	if err != nil {
		return nil, err
	}

	lines := make([]checkoutapp.Line, 0, len(enriched))
	for _, e := range enriched {
		lines = append(lines, checkoutapp.Line{
			ProductID: e.Line.ProductID,
			Name:      e.Product.Name,
			Quantity:  e.Line.Quantity,
			UnitPrice: e.Product.Price,
			Total:     e.Total,
		})
	}
	return lines, nil
}

func (r *CartServiceReader) Clear(ctx context.Context, owner checkoutdomain.Owner) error {
	return r.svc.Clear(ctx, toPartition(owner))
}
