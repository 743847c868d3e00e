package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrimap/market/internal/cart/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Service maintains the invariant "at most one line per (partition, product)".
type Service struct {
	ledger   Ledger
	products ProductReader

	maxConcurrent int
}

func NewService(ledger Ledger, products ProductReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		ledger:        ledger,
		products:      products,
		maxConcurrent: maxConcurrent,
	}
}

// Add merges monotonically: repeated adds accumulate, they never overwrite.
func (s *Service) Add(ctx context.Context, p domain.Partition, productID string, qty int) (domain.CartLine, error) {
	if qty <= 0 {
		return domain.CartLine{}, ErrInvalidQuantity
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return domain.CartLine{}, err
	}

	return s.ledger.AddQuantity(ctx, p, productID, qty)
}

// SetQuantity overwrites the line's quantity. A non-positive quantity
// delegates to Remove, keeping the zero-quantity policy in one place.
func (s *Service) SetQuantity(ctx context.Context, p domain.Partition, productID string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, p, productID)
	}
	return s.ledger.SetQuantity(ctx, p, productID, qty)
}

// Remove deletes the unique matching line. The post-condition is always "no
// such line", but a second call reports ErrNotFound.
func (s *Service) Remove(ctx context.Context, p domain.Partition, productID string) error {
	n, err := s.ledger.DeleteLine(ctx, p, productID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List joins every line against the current catalog. A line whose product
// vanished is dropped from the result, never surfaced as an error.
func (s *Service) List(ctx context.Context, p domain.Partition) ([]domain.EnrichedLine, error) {
	lines, err := s.ledger.ListLines(ctx, p)
	if err != nil {
		return nil, err
	}

	enriched := make([]*domain.EnrichedLine, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range lines {
		idx := idx
		g.Go(func() error {
			line := lines[idx]
			product, err := s.products.GetProduct(ctx, line.ProductID)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("enrich product %s: %w", line.ProductID, err)
			}

			enriched[idx] = &domain.EnrichedLine{
				Line:    line,
				Product: product,
				Total:   product.Price * float64(line.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.EnrichedLine, 0, len(enriched))
	for _, e := range enriched {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

// Total is 0 for an empty partition.
func (s *Service) Total(ctx context.Context, p domain.Partition) (float64, error) {
	lines, err := s.List(ctx, p)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, line := range lines {
		total += line.Total
	}
	return total, nil
}

// Clear empties the partition. Used after a completed payment.
func (s *Service) Clear(ctx context.Context, p domain.Partition) error {
	return s.ledger.DeletePartition(ctx, p)
}

// MergeGuest folds a guest partition into an authenticated one with additive
// quantity merge, then deletes the guest lines. This is an explicit operation
// invoked on login; partition resolution itself never crosses the two scopes.
func (s *Service) MergeGuest(ctx context.Context, guest, user domain.Partition) error {
	if guest.IsAuthenticated() || !user.IsAuthenticated() {
		return fmt.Errorf("merge requires a guest source and an authenticated target")
	}
	if guest.IsZero() {
		return nil
	}

	lines, err := s.ledger.ListLines(ctx, guest)
	if err != nil {
		return err
	}

	// Each merged line is deleted individually; wiping the whole partition
	// here would also take out a line added after the listing.
	for _, line := range lines {
		if _, err := s.ledger.AddQuantity(ctx, user, line.ProductID, line.Quantity); err != nil {
			return err
		}
		if _, err := s.ledger.DeleteLine(ctx, guest, line.ProductID); err != nil {
			return err
		}
	}

	return nil
}
