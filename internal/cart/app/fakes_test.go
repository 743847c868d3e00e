package app

import (
	"context"
	"sync"
	"time"

	"github.com/agrimap/market/internal/cart/domain"
	"github.com/google/uuid"
)

// memLedger mirrors the store contract: each call is atomic.
type memLedger struct {
	mu    sync.Mutex
	lines map[string]*domain.CartLine // partition key + product id
}

func newMemLedger() *memLedger {
	return &memLedger{lines: make(map[string]*domain.CartLine)}
}

func key(p domain.Partition, productID string) string {
	return partitionKey(p) + "|" + productID
}

func partitionKey(p domain.Partition) string {
	if p.IsAuthenticated() {
		return "u:" + p.UserID
	}
	return "g:" + p.SessionToken
}

func (l *memLedger) AddQuantity(ctx context.Context, p domain.Partition, productID string, qty int) (domain.CartLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(p, productID)
	if line, ok := l.lines[k]; ok {
		line.Quantity += qty
		line.UpdatedAt = time.Now()
		return *line, nil
	}

	line := &domain.CartLine{
		ID:        uuid.NewString(),
		Partition: p,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	l.lines[k] = line
	return *line, nil
}

func (l *memLedger) SetQuantity(ctx context.Context, p domain.Partition, productID string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, ok := l.lines[key(p, productID)]
	if !ok {
		return ErrNotFound
	}
	line.Quantity = qty
	line.UpdatedAt = time.Now()
	return nil
}

func (l *memLedger) DeleteLine(ctx context.Context, p domain.Partition, productID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(p, productID)
	if _, ok := l.lines[k]; !ok {
		return 0, nil
	}
	delete(l.lines, k)
	return 1, nil
}

func (l *memLedger) ListLines(ctx context.Context, p domain.Partition) ([]domain.CartLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.CartLine
	for _, line := range l.lines {
		if partitionKey(line.Partition) == partitionKey(p) {
			out = append(out, *line)
		}
	}
	return out, nil
}

func (l *memLedger) DeletePartition(ctx context.Context, p domain.Partition) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, line := range l.lines {
		if partitionKey(line.Partition) == partitionKey(p) {
			delete(l.lines, k)
		}
	}
	return nil
}

type memCatalog struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newMemCatalog(products ...domain.Product) *memCatalog {
	c := &memCatalog{products: make(map[string]domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *memCatalog) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[productID]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (c *memCatalog) remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, productID)
}
