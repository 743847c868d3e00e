package domain

import "time"

// Partition is the disjoint ownership scope of a cart: one authenticated user
// or one guest session. Exactly one of the two fields identifies it.
type Partition struct {
	UserID       string
	SessionToken string
}

func Authenticated(userID string) Partition {
	return Partition{UserID: userID}
}

func Guest(sessionToken string) Partition {
	return Partition{SessionToken: sessionToken}
}

func (p Partition) IsAuthenticated() bool {
	return p.UserID != ""
}

func (p Partition) IsZero() bool {
	return p.UserID == "" && p.SessionToken == ""
}

// Actor is the caller-supplied identity evidence for one request. UserID is
// set only when the web layer authenticated the bearer token.
type Actor struct {
	UserID       string
	SessionToken string
}

// ResolvePartition is pure and recomputed on every call; the resolution is
// never persisted. An authenticated actor never sees guest data within the
// same request.
func ResolvePartition(a Actor) Partition {
	if a.UserID != "" {
		return Authenticated(a.UserID)
	}
	return Guest(a.SessionToken)
}

// CartLine holds a positive quantity; a line with quantity <= 0 is deleted,
// never stored. At most one line exists per (partition, product).
type CartLine struct {
	ID        string
	Partition Partition
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is the catalog snapshot the cart reads through its port.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	ImageURL     string
	Region       string
	Category     string
	ProducerName string
	Unit         string
}

// EnrichedLine joins a line with live product data at read time. It is never
// persisted, so price changes surface immediately.
type EnrichedLine struct {
	Line    CartLine
	Product Product
	Total   float64
}
