package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvReservationStrategy = "RESERVATION_STRATEGY"
	EnvLeaseTTL            = "LEASE_TTL"
	EnvPricingTimezone     = "PRICING_TIMEZONE"

	EnvKafkaBrokers        = "KAFKA_BROKERS"
	EnvKafkaBookingsTopic  = "KAFKA_BOOKINGS_TOPIC"
	EnvEventPublishTimeout = "EVENT_PUBLISH_TIMEOUT"

	EnvFile = "ENV_FILE"
)
