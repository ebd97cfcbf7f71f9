package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, id string) (*domain.Expense, error)
	ListExpensesByEvent(ctx context.Context, eventID string) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records an expense and splits it among its participants.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid split strategy")
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense with its shares.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "expense")
	if !ok {
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get expense")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// ListByEvent lists an event's expenses, newest first.
func (h *ExpenseHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	expenses, err := h.expenseUC.ListExpensesByEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}
