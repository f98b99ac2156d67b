package model

import "time"

// Lease is an exclusivity marker in the lease ledger. The key lives in _id so
// the store rejects a second holder with a duplicate key error.
type Lease struct {
	Key       string     `bson:"_id" json:"key"`
	Owner     string     `bson:"owner" json:"owner"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

func (l *Lease) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}
