package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/events?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"event not found", domain.ErrEventNotFound, http.StatusNotFound},
		{"payment not found", domain.ErrPaymentNotFound, http.StatusNotFound},
		{"participant not found", domain.ErrParticipantNotFound, http.StatusUnprocessableEntity},
		{"already settled", domain.ErrPaymentAlreadySettled, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"wrapped invalid input", fmt.Errorf("%w: duplicate participant", domain.ErrInvalidInput), http.StatusBadRequest},
		{"amount too small", fmt.Errorf("%w: minimum", domain.ErrAmountTooSmall), http.StatusBadRequest},
		{"same user", domain.ErrSameUser, http.StatusBadRequest},
		{"inconsistent balances", domain.ErrInconsistentBalances, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteDomainErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, &dto.ValidationError{Fields: []dto.FieldError{{Field: "title", Message: "title is required"}}}, "ignored")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "title" {
		t.Fatalf("expected field errors, got %+v", resp)
	}
}

func TestWriteJSONSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusAccepted, map[string]string{"status": "ok"})

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %s", ct)
	}
}
