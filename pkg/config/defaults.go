package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "courtbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// auto probes the deployment once at startup.
	DefaultReservationStrategy = "auto"
	// Zero keeps leases until they are explicitly released.
	DefaultLeaseTTL        = 0 * time.Second
	DefaultPricingTimezone = "UTC"

	DefaultKafkaBrokers        = ""
	DefaultKafkaBookingsTopic  = "bookings.events"
	DefaultEventPublishTimeout = 10 * time.Second
)

const (
	Confirmed = "confirmed"
	Cancelled = "cancelled"
)

var ReservationStrategies = []string{"auto", "transaction", "lease"}
