package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to a status code and writes it.
// Validation errors carry their field list into the response body.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error:   message,
			Message: err.Error(),
			Fields:  validationErr.Errors,
		})

		return
	}

	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		notFoundErr   *domain.EntityNotFoundError
		balanceErr    *domain.BalanceError
		currencyErr   *domain.CurrencyMismatchError
		amountErr     *domain.InvalidAmountError
		allocationErr *domain.AllocationError
	)

	switch {
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &balanceErr):
		return http.StatusBadRequest
	case errors.As(err, &currencyErr):
		return http.StatusBadRequest
	case errors.As(err, &amountErr):
		return http.StatusBadRequest
	case errors.As(err, &allocationErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a date query parameter. Missing or malformed
// values come back nil.
func parseDateQuery(r *http.Request, key string) *time.Time {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	t, err := time.Parse(dto.DateFormat, val)
	if err != nil {
		return nil
	}
	return &t
}
