package service

import (
	"context"
	"sync"
	"time"

	"courtbook/pkg/logger"
	"courtbook/pkg/model"
)

// EventPublisher announces confirmed bookings. Delivery is best effort: a
// failed publish is logged and never undoes the reservation.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error
}

type noopPublisher struct{}

func (noopPublisher) PublishBookingConfirmed(context.Context, *model.Booking) error { return nil }

// NoopPublisher drops every event.
func NoopPublisher() EventPublisher {
	return noopPublisher{}
}

const defaultEventPublishTimeout = 10 * time.Second

// eventDispatcher publishes off the request path. Each publish gets its own
// deadline, detached from the request, so a slow broker cannot hold a
// response open.
type eventDispatcher struct {
	publisher EventPublisher
	timeout   time.Duration
	log       *logger.Logger
	inflight  sync.WaitGroup
}

func newEventDispatcher(publisher EventPublisher, timeout time.Duration, log *logger.Logger) *eventDispatcher {
	if publisher == nil {
		publisher = NoopPublisher()
	}
	if timeout <= 0 {
		timeout = defaultEventPublishTimeout
	}
	return &eventDispatcher{publisher: publisher, timeout: timeout, log: log}
}

func (d *eventDispatcher) bookingConfirmed(ctx context.Context, booking *model.Booking) {
	event := *booking
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.publisher.PublishBookingConfirmed(pubCtx, &event); err != nil {
			d.log.Warn("Failed to publish booking event", "id", event.ID, "error", err)
		}
	}()
}

// wait blocks until every in-flight publish finished or ctx is done.
func (d *eventDispatcher) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
