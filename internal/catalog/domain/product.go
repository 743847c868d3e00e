package domain

import "time"

// Product is immutable after catalog load; QuantityAvailable is informational,
// the cart never reserves stock against it.
type Product struct {
	ID                string
	Name              string
	Description       string
	Price             float64
	ImageURL          string
	Region            string
	Category          string
	ProducerName      string
	QuantityAvailable int
	Unit              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Filter narrows ListProducts; zero values match everything.
type Filter struct {
	Region   string
	Category string
}
