package app

import (
	"context"
	"errors"
	"testing"

	"github.com/agrimap/market/internal/cart/domain"
)

func newTestService(products ...domain.Product) (*Service, *memCatalog) {
	catalog := newMemCatalog(products...)
	return NewService(newMemLedger(), catalog, 4), catalog
}

func TestResolvePartition(t *testing.T) {
	t.Run("authenticated wins", func(t *testing.T) {
		p := domain.ResolvePartition(domain.Actor{UserID: "u1", SessionToken: "s1"})
		if !p.IsAuthenticated() || p.UserID != "u1" || p.SessionToken != "" {
			t.Fatalf("unexpected partition: %+v", p)
		}
	})

	t.Run("guest falls back to session token", func(t *testing.T) {
		p := domain.ResolvePartition(domain.Actor{SessionToken: "s1"})
		if p.IsAuthenticated() || p.SessionToken != "s1" {
			t.Fatalf("unexpected partition: %+v", p)
		}
	})
}

func TestAddAccumulates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.Product{ID: "p1", Name: "Basmati", Price: 120.0})
	p := domain.Guest("s1")

	if _, err := svc.Add(ctx, p, "p1", 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.Add(ctx, p, "p1", 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	lines, err := svc.List(ctx, p)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(lines))
	}
	if lines[0].Line.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", lines[0].Line.Quantity)
	}
	if lines[0].Total != 600.0 {
		t.Fatalf("expected line total 600.0, got %v", lines[0].Total)
	}
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.Product{ID: "p1", Price: 10})
	p := domain.Guest("s2")

	t.Run("unknown product -> not found, no line created", func(t *testing.T) {
		if _, err := svc.Add(ctx, p, "unknown_id", 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		lines, err := svc.List(ctx, p)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(lines) != 0 {
			t.Fatalf("expected empty cart, got %d lines", len(lines))
		}
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		if _, err := svc.Add(ctx, p, "p1", 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		if _, err := svc.Add(ctx, p, "p1", -3); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.Product{ID: "p1", Price: 120.0})
	p := domain.Guest("s1")

	if _, err := svc.Add(ctx, p, "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	t.Run("overwrites, never merges", func(t *testing.T) {
		if err := svc.SetQuantity(ctx, p, "p1", 7); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		lines, _ := svc.List(ctx, p)
		if len(lines) != 1 || lines[0].Line.Quantity != 7 {
			t.Fatalf("expected quantity 7, got %+v", lines)
		}
	})

	t.Run("zero deletes the line", func(t *testing.T) {
		if err := svc.SetQuantity(ctx, p, "p1", 0); err != nil {
			t.Fatalf("set(0) failed: %v", err)
		}
		lines, _ := svc.List(ctx, p)
		if len(lines) != 0 {
			t.Fatalf("expected empty cart, got %d lines", len(lines))
		}
		total, err := svc.Total(ctx, p)
		if err != nil || total != 0 {
			t.Fatalf("expected total 0, got %v (err %v)", total, err)
		}
	})

	t.Run("remove after zeroing reports not found", func(t *testing.T) {
		if err := svc.Remove(ctx, p, "p1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("positive set on absent line reports not found", func(t *testing.T) {
		if err := svc.SetQuantity(ctx, p, "p1", 3); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("negative set on absent line reports not found via remove", func(t *testing.T) {
		if err := svc.SetQuantity(ctx, p, "p1", -1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPartitionsNeverShareLines(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.Product{ID: "p1", Price: 50})

	// Same end user, both identities: still two independent lines.
	auth := domain.Authenticated("u1")
	guest := domain.Guest("s1")

	if _, err := svc.Add(ctx, auth, "p1", 1); err != nil {
		t.Fatalf("auth add failed: %v", err)
	}
	if _, err := svc.Add(ctx, guest, "p1", 2); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}

	authLines, _ := svc.List(ctx, auth)
	guestLines, _ := svc.List(ctx, guest)

	if len(authLines) != 1 || authLines[0].Line.Quantity != 1 {
		t.Fatalf("authenticated partition polluted: %+v", authLines)
	}
	if len(guestLines) != 1 || guestLines[0].Line.Quantity != 2 {
		t.Fatalf("guest partition polluted: %+v", guestLines)
	}
}

func TestTotalSumsEnrichedLines(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(
		domain.Product{ID: "x", Price: 100},
		domain.Product{ID: "y", Price: 50},
	)
	p := domain.Authenticated("u1")

	if _, err := svc.Add(ctx, p, "x", 1); err != nil {
		t.Fatalf("add x failed: %v", err)
	}
	if _, err := svc.Add(ctx, p, "y", 2); err != nil {
		t.Fatalf("add y failed: %v", err)
	}

	lines, err := svc.List(ctx, p)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 enriched lines, got %d", len(lines))
	}

	total, err := svc.Total(ctx, p)
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if total != 200 {
		t.Fatalf("expected total 200, got %v", total)
	}
}

func TestListDropsVanishedProducts(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newTestService(
		domain.Product{ID: "x", Price: 100},
		domain.Product{ID: "y", Price: 50},
	)
	p := domain.Guest("s1")

	if _, err := svc.Add(ctx, p, "x", 1); err != nil {
		t.Fatalf("add x failed: %v", err)
	}
	if _, err := svc.Add(ctx, p, "y", 2); err != nil {
		t.Fatalf("add y failed: %v", err)
	}

	catalog.remove("y")

	lines, err := svc.List(ctx, p)
	if err != nil {
		t.Fatalf("defensive join must not error: %v", err)
	}
	if len(lines) != 1 || lines[0].Line.ProductID != "x" {
		t.Fatalf("expected only product x to survive, got %+v", lines)
	}

	total, err := svc.Total(ctx, p)
	if err != nil || total != 100 {
		t.Fatalf("expected total 100, got %v (err %v)", total, err)
	}
}

func TestGuestScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.Product{ID: "P1", Name: "Basmati", Price: 120.0})
	p := domain.Guest("s1")

	if _, err := svc.Add(ctx, p, "P1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lines, _ := svc.List(ctx, p)
	if len(lines) != 1 || lines[0].Line.Quantity != 2 || lines[0].Total != 240.0 {
		t.Fatalf("after first add: %+v", lines)
	}

	if _, err := svc.Add(ctx, p, "P1", 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	lines, _ = svc.List(ctx, p)
	if len(lines) != 1 || lines[0].Line.Quantity != 5 || lines[0].Total != 600.0 {
		t.Fatalf("after second add: %+v", lines)
	}

	if err := svc.SetQuantity(ctx, p, "P1", 0); err != nil {
		t.Fatalf("set(0) failed: %v", err)
	}
	total, err := svc.Total(ctx, p)
	if err != nil || total != 0 {
		t.Fatalf("expected empty cart total 0, got %v (err %v)", total, err)
	}
}
