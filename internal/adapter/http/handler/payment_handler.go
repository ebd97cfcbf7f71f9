package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error)
	SettlePayment(ctx context.Context, id string) (*domain.Payment, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ListPaymentsByEvent(ctx context.Context, eventID string) ([]*domain.Payment, error)
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Record records a payment between two members.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	payment, err := h.paymentUC.RecordPayment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Settle marks a pending payment as settled.
func (h *PaymentHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment")
	if !ok {
		return
	}

	payment, err := h.paymentUC.SettlePayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to settle payment")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment")
	if !ok {
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get payment")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// ListByEvent lists an event's payments.
func (h *PaymentHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	payments, err := h.paymentUC.ListPaymentsByEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err, "failed to list payments")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
