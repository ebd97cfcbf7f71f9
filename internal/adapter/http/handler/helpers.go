package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation failed",
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
		return
	}

	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrPaymentAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrSameUser),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidCapacity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeAndValidate decodes a JSON body into req and checks its validate tags.
func decodeAndValidate(r *http.Request, req any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		return err
	}

	return dto.Validate(req)
}

// writeDecodeError reports a request body that failed decoding or validation.
func writeDecodeError(w http.ResponseWriter, err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		writeDomainError(w, err, "")
		return
	}

	writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
}

// pathID returns the {id} URL parameter, writing 400 when it is empty.
func pathID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing "+what+" ID", "")
		return "", false
	}

	return id, true
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
