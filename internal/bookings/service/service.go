package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "courtbook/internal/bookings/errors"
	"courtbook/internal/bookings/ledger"
	"courtbook/internal/bookings/repository"
	"courtbook/internal/bookings/validator"
	"courtbook/pkg/config"
	apperrors "courtbook/pkg/errors"
	"courtbook/pkg/model"
)

type BookingService interface {
	// Reserve atomically checks the requested interval and records a
	// confirmed booking priced at creation time.
	Reserve(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error)
	// Quote prices a request without reserving anything.
	Quote(ctx context.Context, req *model.ReservationRequest) (*model.PriceBreakdown, error)
	// IsFree is an advisory availability check; the answer may be stale by
	// the time a reservation is attempted.
	IsFree(ctx context.Context, courtID, coachID string, start, end time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Strategy() Strategy
	// Drain waits for booking events still being published.
	Drain(ctx context.Context) error
}

type bookingService struct {
	repo      repository.BookingRepository
	catalog   repository.CatalogRepository
	leases    *ledger.Ledger
	validator *validator.ReservationValidator
	events    *eventDispatcher
	strategy  Strategy
	metrics   *reservationMetrics
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	catalog repository.CatalogRepository,
	leases *ledger.Ledger,
	validator *validator.ReservationValidator,
	events EventPublisher,
	strategy Strategy,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		catalog:   catalog,
		leases:    leases,
		validator: validator,
		events:    newEventDispatcher(events, cfg.EventPublishTimeout, cfg.Log),
		strategy:  strategy,
		metrics:   defaultReservationMetrics(),
		cfg:       cfg,
	}
}

func (s *bookingService) Strategy() Strategy {
	return s.strategy
}

func (s *bookingService) Drain(ctx context.Context) error {
	return s.events.wait(ctx)
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}
