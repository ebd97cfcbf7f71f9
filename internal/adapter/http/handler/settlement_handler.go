package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	Balances(ctx context.Context, eventID string) ([]domain.BalanceView, error)
	SuggestTransfers(ctx context.Context, eventID string) ([]domain.SettlementTransfer, error)
	CheckConsistency(ctx context.Context, eventID string) (*usecase.ConsistencyReport, error)
}

// SettlementHandler serves an event's balances and settlement plan.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Balances returns each member's net position.
func (h *SettlementHandler) Balances(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	views, err := h.settlementUC.Balances(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err, "failed to compute balances")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(eventID, views))
}

// Suggest returns the transfers that settle the event.
func (h *SettlementHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	transfers, err := h.settlementUC.SuggestTransfers(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err, "failed to suggest settlements")
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(eventID, transfers))
}

// Consistency reports whether the event's balances net to zero.
func (h *SettlementHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	report, err := h.settlementUC.CheckConsistency(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err, "failed to check consistency")
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
