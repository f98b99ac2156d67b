// Package ledger implements the keyed mutex used by the lease reservation
// strategy. Exclusion comes from the store's unique key, so it holds across
// processes.
package ledger

import (
	"context"
	"errors"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/internal/bookings/repository"
	"courtbook/pkg/logger"
	"courtbook/pkg/model"

	"github.com/google/uuid"
)

// Key identifies a lease by court and exact interval start. Reservations that
// overlap but start at different instants get different keys.
func Key(courtID string, start time.Time) string {
	return courtID + "_" + start.UTC().Format(time.RFC3339Nano)
}

// Handle proves ownership of an acquired lease.
type Handle struct {
	Key   string
	Owner string
}

type Ledger struct {
	repo repository.LeaseRepository
	ttl  time.Duration
	log  *logger.Logger
	now  func() time.Time
}

// New returns a ledger over repo. A zero ttl disables expiry: a lease left
// behind by a crashed holder blocks its key until removed by hand.
func New(repo repository.LeaseRepository, ttl time.Duration, log *logger.Logger) *Ledger {
	return &Ledger{
		repo: repo,
		ttl:  ttl,
		log:  log,
		now:  time.Now,
	}
}

// Acquire inserts a lease for key owned by a fresh random token. It returns an
// error wrapping ErrLeaseHeld when a live lease already exists.
func (l *Ledger) Acquire(ctx context.Context, key string) (*Handle, error) {
	now := l.now().UTC().Truncate(time.Millisecond)
	lease := &model.Lease{
		Key:       key,
		Owner:     uuid.NewString(),
		CreatedAt: now,
	}
	if l.ttl > 0 {
		expiresAt := now.Add(l.ttl)
		lease.ExpiresAt = &expiresAt
	}

	err := l.repo.Create(ctx, lease)
	if err == nil {
		return &Handle{Key: key, Owner: lease.Owner}, nil
	}
	if l.ttl <= 0 || !errors.Is(err, bookingserrors.ErrLeaseHeld) {
		return nil, err
	}

	reclaimed, reclaimErr := l.repo.DeleteExpired(ctx, key, now)
	if reclaimErr != nil {
		return nil, reclaimErr
	}
	if !reclaimed {
		return nil, err
	}

	l.log.Warn("Reclaimed expired lease", "key", key)
	if err := l.repo.Create(ctx, lease); err != nil {
		return nil, err
	}
	return &Handle{Key: key, Owner: lease.Owner}, nil
}

// Release deletes the lease if h still owns it, otherwise it returns an error
// wrapping ErrLeaseNotOwned.
func (l *Ledger) Release(ctx context.Context, h *Handle) error {
	return l.repo.Delete(ctx, h.Key, h.Owner)
}
