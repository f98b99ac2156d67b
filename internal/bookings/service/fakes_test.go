package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/internal/bookings/ledger"
	"courtbook/internal/bookings/validator"
	"courtbook/pkg/client"
	"courtbook/pkg/config"
	mongotx "courtbook/pkg/db/mongo"
	"courtbook/pkg/logger"
	"courtbook/pkg/model"
)

const (
	courtIndoorID  = "65a000000000000000000001"
	courtOutdoorID = "65a000000000000000000003"
	coachAliceID   = "65b000000000000000000001"
	coachBobID     = "65b000000000000000000002"
	missingID      = "65c000000000000000000099"
)

var errWriteConflict = errors.New("write conflict")

const maxTxAttempts = 200

type txKey struct{}

// memoryTx reads from the snapshot taken when it began and buffers its
// inserts until commit.
type memoryTx struct {
	startSeq int
	snapshot []*model.Booking
	inserts  []*model.Booking
	claimed  []string
}

// memoryBookings is an in-memory booking log. Transactions run concurrently
// on snapshots; writing a holder that another open transaction wrote, or
// that changed after the snapshot, fails with errWriteConflict and the
// transaction is retried.
type memoryBookings struct {
	mu       sync.Mutex
	bookings []*model.Booking
	nextID   int

	commitSeq     int
	holderVersion map[string]int
	holderOwner   map[string]*memoryTx

	createErr      error
	findConflictFn func() error

	// afterConflictCheck runs once, right after the first FindConflict.
	afterConflictCheck func()
	writeConflicted    chan struct{}

	txErr          error
	txCalls        int
	claims         int
	writeConflicts int
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{
		holderVersion:   make(map[string]int),
		holderOwner:     make(map[string]*memoryTx),
		writeConflicted: make(chan struct{}, 1),
	}
}

func txFrom(ctx context.Context) *memoryTx {
	tx, _ := ctx.Value(txKey{}).(*memoryTx)
	return tx
}

func (m *memoryBookings) Create(ctx context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return err
	}
	m.nextID++
	booking.ID = fmt.Sprintf("%024x", m.nextID)
	booking.CreatedAt = time.Now().UTC()
	stored := *booking

	if tx := txFrom(ctx); tx != nil {
		tx.inserts = append(tx.inserts, &stored)
		return nil
	}
	m.bookings = append(m.bookings, &stored)
	return nil
}

func (m *memoryBookings) FindByID(_ context.Context, id string) (*model.Booking, error) {
	if len(id) != 24 {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			found := *b
			return &found, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *memoryBookings) FindAll(_ context.Context, limit int, offset int64) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for i := len(m.bookings) - 1 - int(offset); i >= 0 && len(out) < limit; i-- {
		b := *m.bookings[i]
		out = append(out, &b)
	}
	return out, nil
}

func (m *memoryBookings) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *memoryBookings) FindConflict(ctx context.Context, courtID, coachID string, start, end time.Time) (*model.Booking, error) {
	if m.findConflictFn != nil {
		if err := m.findConflictFn(); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	visible := m.bookings
	if tx := txFrom(ctx); tx != nil {
		visible = append(append([]*model.Booking(nil), tx.snapshot...), tx.inserts...)
	}
	found := firstOverlap(visible, courtID, coachID, start, end)
	hook := m.afterConflictCheck
	m.afterConflictCheck = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return found, nil
}

func firstOverlap(bookings []*model.Booking, courtID, coachID string, start, end time.Time) *model.Booking {
	for _, b := range bookings {
		if b.Status == config.Cancelled {
			continue
		}
		if b.CourtID != courtID && (coachID == "" || b.CoachID != coachID) {
			continue
		}
		if b.Overlaps(start, end) {
			found := *b
			return &found
		}
	}
	return nil
}

func (m *memoryBookings) ClaimHolders(ctx context.Context, courtID, coachID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims++

	tx := txFrom(ctx)
	if tx == nil {
		return nil
	}

	holders := []string{"court:" + courtID}
	if coachID != "" {
		holders = append(holders, "coach:"+coachID)
	}
	for _, holder := range holders {
		owner := m.holderOwner[holder]
		if (owner != nil && owner != tx) || m.holderVersion[holder] > tx.startSeq {
			m.writeConflicts++
			select {
			case m.writeConflicted <- struct{}{}:
			default:
			}
			return fmt.Errorf("claim %s: %w", holder, errWriteConflict)
		}
		m.holderOwner[holder] = tx
		tx.claimed = append(tx.claimed, holder)
	}
	return nil
}

func (m *memoryBookings) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	m.mu.Lock()
	m.txCalls++
	txErr := m.txErr
	m.mu.Unlock()
	if txErr != nil {
		return fmt.Errorf("transaction failed: %w", txErr)
	}

	for attempt := 1; ; attempt++ {
		tx := m.begin()
		err := fn(context.WithValue(ctx, txKey{}, tx))
		if err == nil {
			m.commit(tx)
			return nil
		}

		m.abort(tx)
		if !errors.Is(err, errWriteConflict) {
			return err
		}
		if attempt == maxTxAttempts {
			return fmt.Errorf("transaction failed: %w", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func (m *memoryBookings) begin() *memoryTx {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]*model.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		copied := *b
		snapshot = append(snapshot, &copied)
	}
	return &memoryTx{startSeq: m.commitSeq, snapshot: snapshot}
}

func (m *memoryBookings) commit(tx *memoryTx) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitSeq++
	m.bookings = append(m.bookings, tx.inserts...)
	for _, holder := range tx.claimed {
		m.holderVersion[holder] = m.commitSeq
		delete(m.holderOwner, holder)
	}
}

func (m *memoryBookings) abort(tx *memoryTx) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, holder := range tx.claimed {
		if m.holderOwner[holder] == tx {
			delete(m.holderOwner, holder)
		}
	}
}

func (m *memoryBookings) cancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		b.Status = config.Cancelled
	}
}

func (m *memoryBookings) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type memoryLeases struct {
	mu      sync.Mutex
	leases  map[string]model.Lease
	creates int
}

func newMemoryLeases() *memoryLeases {
	return &memoryLeases{leases: make(map[string]model.Lease)}
}

func (m *memoryLeases) Create(_ context.Context, lease *model.Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, ok := m.leases[lease.Key]; ok {
		return fmt.Errorf("%w: %s", bookingserrors.ErrLeaseHeld, lease.Key)
	}
	m.leases[lease.Key] = *lease
	return nil
}

func (m *memoryLeases) Delete(_ context.Context, key, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lease, ok := m.leases[key]
	if !ok || lease.Owner != owner {
		return fmt.Errorf("%w: %s", bookingserrors.ErrLeaseNotOwned, key)
	}
	delete(m.leases, key)
	return nil
}

func (m *memoryLeases) DeleteExpired(_ context.Context, key string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lease, ok := m.leases[key]
	if !ok || !lease.Expired(now) {
		return false, nil
	}
	delete(m.leases, key)
	return true, nil
}

func (m *memoryLeases) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.leases)
}

type memoryCatalog struct {
	courts  map[string]*model.Court
	coaches map[string]*model.Coach
	rules   []model.PricingRule
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		courts: map[string]*model.Court{
			courtIndoorID:  {ID: courtIndoorID, Name: "Court 1", Type: model.CourtTypeIndoor, BasePrice: 12},
			courtOutdoorID: {ID: courtOutdoorID, Name: "Court 3", Type: model.CourtTypeOutdoor, BasePrice: 8},
		},
		coaches: map[string]*model.Coach{
			coachAliceID: {ID: coachAliceID, Name: "Alice", HourlyRate: 20},
			coachBobID: {ID: coachBobID, Name: "Bob", HourlyRate: 18, UnavailablePeriods: []model.Period{
				{Start: time.Date(2030, 6, 3, 9, 0, 0, 0, time.UTC), End: time.Date(2030, 6, 3, 12, 0, 0, 0, time.UTC)},
			}},
		},
	}
}

func (c *memoryCatalog) FindCourt(_ context.Context, id string) (*model.Court, error) {
	if court, ok := c.courts[id]; ok {
		return court, nil
	}
	return nil, fmt.Errorf("%w: %s", bookingserrors.ErrCourtNotFound, id)
}

func (c *memoryCatalog) FindCoach(_ context.Context, id string) (*model.Coach, error) {
	if coach, ok := c.coaches[id]; ok {
		return coach, nil
	}
	return nil, fmt.Errorf("%w: %s", bookingserrors.ErrCoachNotFound, id)
}

func (c *memoryCatalog) ListPricingRules(context.Context) ([]model.PricingRule, error) {
	return c.rules, nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	events  []*model.Booking
	ctxErrs []error
	err     error
	// release, when set, holds every publish until it is closed or the
	// publish context ends.
	release chan struct{}
}

func (p *recordingPublisher) PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, booking)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	return p.err
}

func (p *recordingPublisher) published() []*model.Booking {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*model.Booking(nil), p.events...)
}

type fixture struct {
	bookings  *memoryBookings
	leases    *memoryLeases
	catalog   *memoryCatalog
	publisher *recordingPublisher
	service   BookingService
}

func newFixture(strategy Strategy, opts ...func(*config.Config)) *fixture {
	cfg := &config.Config{
		Log:                 logger.Discard(),
		Client:              client.NewClient(),
		PricingLocation:     time.UTC,
		EventPublishTimeout: time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	f := &fixture{
		bookings:  newMemoryBookings(),
		leases:    newMemoryLeases(),
		catalog:   newMemoryCatalog(),
		publisher: &recordingPublisher{},
	}
	f.service = NewBookingService(
		f.bookings,
		f.catalog,
		ledger.New(f.leases, 0, cfg.Log),
		validator.NewReservationValidator(cfg.Log),
		f.publisher,
		strategy,
		cfg,
	)
	return f
}

// drain waits for background event publishes.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.service.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}
}

// mondayAt returns an hour on 2030-06-03, a Monday.
func mondayAt(hour int) time.Time {
	return time.Date(2030, 6, 3, hour, 0, 0, 0, time.UTC)
}

func request(courtID string, start time.Time, d time.Duration) *model.ReservationRequest {
	return &model.ReservationRequest{
		UserName:  "Dana",
		CourtID:   courtID,
		StartTime: start,
		EndTime:   start.Add(d),
	}
}
