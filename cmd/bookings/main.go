package main

import (
	"context"

	"courtbook/internal/bookings/events"
	"courtbook/internal/bookings/handler"
	"courtbook/internal/bookings/ledger"
	"courtbook/internal/bookings/repository"
	"courtbook/internal/bookings/service"
	"courtbook/internal/bookings/validator"
	"courtbook/pkg/app"
	"courtbook/pkg/config"
	mongotx "courtbook/pkg/db/mongo"
	"courtbook/pkg/kafka"
	kafka_config "courtbook/pkg/kafka/config"
	kafka_middleware "courtbook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	strategy := resolveStrategy(cfg)
	publisher, producer := initEvents(cfg)
	bookingService := initServices(cfg, strategy, publisher)

	serverApp := app.NewApplication()
	serverApp.SetApp(
		cfg,
		handler.NewHealthHandler(cfg.Client.Mongo, strategy.String(), cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.OnShutdown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.EventPublishTimeout)
		defer cancel()
		if err := bookingService.Drain(ctx); err != nil {
			cfg.Log.Warn("Booking events still in flight at shutdown", "error", err)
		}
	})
	if producer != nil {
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		})
	}
	serverApp.Run()
}

func resolveStrategy(cfg *config.Config) service.Strategy {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	strategy, err := service.ResolveStrategy(ctx, cfg.ReservationStrategy, func(ctx context.Context) (mongotx.Topology, error) {
		return mongotx.Describe(ctx, cfg.Client.Mongo)
	})
	if err != nil {
		cfg.Log.Fatal("Failed to resolve reservation strategy", "configured", cfg.ReservationStrategy, "error", err)
	}

	cfg.Log.Info("Reservation strategy selected", "configured", cfg.ReservationStrategy, "strategy", strategy.String())
	return strategy
}

// initEvents returns a nil producer when Kafka is not configured.
func initEvents(cfg *config.Config) (service.EventPublisher, *kafka.Producer) {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka not configured, booking events disabled")
		return service.NoopPublisher(), nil
	}

	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBookingsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log.With("component", "kafka")))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	return events.NewKafkaPublisher(producer), producer
}

func initServices(cfg *config.Config, strategy service.Strategy, publisher service.EventPublisher) service.BookingService {
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	catalogRepo := repository.NewMongoCatalogRepository(cfg)
	leases := ledger.New(repository.NewMongoLeaseRepository(cfg), cfg.LeaseTTL, cfg.Log)

	bookingService := service.NewBookingService(
		bookingRepo,
		catalogRepo,
		leases,
		validator.NewReservationValidator(cfg.Log),
		publisher,
		strategy,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName, "strategy", strategy.String())
	return bookingService
}
