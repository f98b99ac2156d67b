package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"courtbook/internal/bookings/validator"
	apperrors "courtbook/pkg/errors"
	"courtbook/pkg/model"
)

type reservationFields model.ReservationRequest

// decodeReservation reads a reservation body. Timestamps are decoded here
// rather than by encoding/json so a bad value is reported against its field.
func decodeReservation(r *http.Request) (*model.ReservationRequest, error) {
	var req model.ReservationRequest
	body := struct {
		*reservationFields
		StartTime json.RawMessage `json:"start_time"`
		EndTime   json.RawMessage `json:"end_time"`
	}{reservationFields: (*reservationFields)(&req)}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, invalidFields(validator.ValidationErrors{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
			}})
		}
		return nil, apperrors.InvalidInput("Invalid request body")
	}

	var fieldErrs validator.ValidationErrors
	for _, ts := range []struct {
		field string
		raw   json.RawMessage
		dst   *time.Time
	}{
		{"start_time", body.StartTime, &req.StartTime},
		{"end_time", body.EndTime, &req.EndTime},
	} {
		if len(ts.raw) == 0 || string(ts.raw) == "null" {
			continue
		}
		if err := ts.dst.UnmarshalJSON(ts.raw); err != nil {
			fieldErrs = append(fieldErrs, validator.ValidationError{
				Field:   ts.field,
				Message: ts.field + " must be an RFC 3339 timestamp",
			})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, invalidFields(fieldErrs)
	}

	return &req, nil
}

func invalidFields(fields validator.ValidationErrors) error {
	return apperrors.Validation("Reservation validation failed", map[string]any{"fields": fields})
}
