// Command loadtest fires concurrent reservations for one slot and reports how
// many were confirmed. Against a healthy service exactly one should succeed.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"courtbook/pkg/client"
	"courtbook/pkg/logger"
	"courtbook/pkg/model"
)

type result struct {
	status int
	id     string
	err    error
	detail string
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "bookings service base URL")
	courtID := flag.String("court", "", "court id (required)")
	coachID := flag.String("coach", "", "optional coach id")
	requests := flag.Int("n", 6, "number of concurrent reservations")
	daysAhead := flag.Int("days", 3, "book this many days from today, at 10:00 UTC")
	flag.Parse()

	log := logger.New(logger.Config{Level: logger.INFO, Format: logger.TEXT, Service: "loadtest"})
	if *courtID == "" {
		log.Error("missing -court")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bookings := client.NewBookingClient(*baseURL)
	if err := bookings.WaitForHealthy(ctx, 10*time.Second); err != nil {
		log.Fatal("Service not healthy", "url", *baseURL, "error", err)
	}

	start := time.Now().UTC().AddDate(0, 0, *daysAhead).Truncate(24 * time.Hour).Add(10 * time.Hour)
	results := run(ctx, bookings, *requests, func(i int) *model.ReservationRequest {
		return &model.ReservationRequest{
			UserName:  fmt.Sprintf("LoadTest_%d", i),
			CourtID:   *courtID,
			CoachID:   *coachID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Equipment: model.Equipment{Rackets: 1},
		}
	})

	confirmed := 0
	for i, r := range results {
		switch {
		case r.err != nil:
			log.Error("Request failed", "request", i, "error", r.err)
		case r.status == http.StatusCreated:
			confirmed++
			log.Info("Confirmed", "request", i, "booking_id", r.id)
		default:
			log.Info("Rejected", "request", i, "status", r.status, "reason", r.detail)
		}
	}

	log.Info("Summary", "total", len(results), "confirmed", confirmed, "rejected", len(results)-confirmed)
	if confirmed > 1 {
		log.Fatal("Double booking detected", "confirmed", confirmed)
	}
}

func run(ctx context.Context, bookings *client.BookingClient, n int, build func(i int) *model.ReservationRequest) []result {
	results := make([]result, n)
	ready := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-ready
			resp, err := bookings.Reserve(ctx, build(i))
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{status: resp.StatusCode}
			if resp.StatusCode == http.StatusCreated {
				if booking, err := bookings.DecodeBooking(resp); err == nil {
					results[i].id = booking.ID
				}
				return
			}
			results[i].detail = client.GetErrorMessage(resp)
		}(i)
	}

	close(ready)
	wg.Wait()
	return results
}
