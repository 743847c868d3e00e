package adapter

import (
	"context"
	"errors"

	cartapp "github.com/agrimap/market/internal/cart/app"
	cartdomain "github.com/agrimap/market/internal/cart/domain"
	catalogapp "github.com/agrimap/market/internal/catalog/app"
)

// CatalogServiceReader lets the cart consult the catalog without importing it
// directly.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartdomain.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
			return cartdomain.Product{}, cartapp.ErrNotFound
		}
		return cartdomain.Product{}, err
	}

	return cartdomain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Region:       p.Region,
		Category:     p.Category,
		ProducerName: p.ProducerName,
		Unit:         p.Unit,
	}, nil
}
