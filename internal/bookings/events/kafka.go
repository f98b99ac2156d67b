// Package events publishes booking lifecycle events to Kafka.
package events

import (
	"context"
	"time"

	"courtbook/pkg/kafka"
	"courtbook/pkg/model"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	SchemaVersion         = "1"
	Source                = "courtbook-bookings"
)

// Publisher is the part of *kafka.Producer the booking publisher needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingConfirmed is the payload of a booking.confirmed event.
type BookingConfirmed struct {
	BookingID   string    `json:"booking_id"`
	CourtID     string    `json:"court_id"`
	CoachID     string    `json:"coach_id,omitempty"`
	UserName    string    `json:"user_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Total       float64   `json:"total"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type KafkaPublisher struct {
	producer Publisher
}

func NewKafkaPublisher(producer Publisher) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishBookingConfirmed keys the event by court so every event for a court
// lands on one partition in order.
func (p *KafkaPublisher) PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error {
	msg, err := kafka.NewMessage().
		WithKey(booking.CourtID).
		WithEventID("").
		WithEventType(EventBookingConfirmed).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(booking.ID).
		WithTimestamp(booking.CreatedAt).
		WithValue(BookingConfirmed{
			BookingID:   booking.ID,
			CourtID:     booking.CourtID,
			CoachID:     booking.CoachID,
			UserName:    booking.UserName,
			StartTime:   booking.StartTime,
			EndTime:     booking.EndTime,
			Total:       booking.PricingBreakdown.Total,
			ConfirmedAt: booking.CreatedAt,
		}).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}
