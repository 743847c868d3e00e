package domain

import "time"

type User struct {
	ID        string
	Email     string
	Name      string
	Picture   string
	CreatedAt time.Time
}

// Session is the server-side record behind an opaque bearer token. ExpiresAt
// is a single canonical timestamp, normalized at the storage boundary; no
// layer above branches on its representation.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
