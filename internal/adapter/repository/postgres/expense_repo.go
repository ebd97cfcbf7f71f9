package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/postgres/generated"
	"github.com/iho/gosplit/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	queries *generated.Queries
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return newExpenseRepository(pool)
}

func newExpenseRepository(db generated.DBTX) *ExpenseRepository {
	return &ExpenseRepository{queries: generated.New(db)}
}

// Create inserts the expense and one row per share, keyed by position.
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	queries := txQueries(tx)

	err := queries.CreateExpense(ctx, generated.CreateExpenseParams{
		ID:            expense.ID,
		EventID:       expense.EventID,
		PayerID:       expense.PayerID,
		Amount:        decimalToNumeric(expense.Amount),
		Description:   expense.Description,
		SplitStrategy: string(expense.SplitStrategy),
		CreatedAt:     timeToPgTimestamptz(expense.CreatedAt),
	})
	if err != nil {
		return err
	}

	for i, share := range expense.Shares {
		err := queries.CreateExpenseShare(ctx, generated.CreateExpenseShareParams{
			ExpenseID: expense.ID,
			Position:  int32(i),
			UserID:    share.UserID,
			Amount:    decimalToNumeric(share.Amount),
			Value:     nullDecimalToNumeric(share.Value),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an expense with its shares.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row, err := r.queries.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	shares, err := r.queries.ListSharesByExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	expense := rowToExpense(row)
	for _, s := range shares {
		expense.Shares = append(expense.Shares, rowToShare(s))
	}

	return expense, nil
}

// ListByEvent lists an event's expenses with shares, newest first.
func (r *ExpenseRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Expense, error) {
	return listExpensesByEvent(ctx, r.queries, eventID)
}

// ListByEventTx is ListByEvent inside tx.
func (r *ExpenseRepository) ListByEventTx(ctx context.Context, tx usecase.Transaction, eventID string) ([]*domain.Expense, error) {
	return listExpensesByEvent(ctx, txQueries(tx), eventID)
}

func listExpensesByEvent(ctx context.Context, queries *generated.Queries, eventID string) ([]*domain.Expense, error) {
	rows, err := queries.ListExpensesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	shares, err := queries.ListSharesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	expenses := make([]*domain.Expense, 0, len(rows))
	byID := make(map[string]*domain.Expense, len(rows))
	for _, row := range rows {
		e := rowToExpense(row)
		expenses = append(expenses, e)
		byID[e.ID] = e
	}

	// Shares arrive ordered by (expense_id, position).
	for _, s := range shares {
		if e, ok := byID[s.ExpenseID]; ok {
			e.Shares = append(e.Shares, rowToShare(s))
		}
	}

	return expenses, nil
}

func rowToExpense(row generated.Expense) *domain.Expense {
	return &domain.Expense{
		ID:            row.ID,
		EventID:       row.EventID,
		PayerID:       row.PayerID,
		Amount:        numericToDecimal(row.Amount),
		Description:   row.Description,
		SplitStrategy: domain.SplitStrategy(row.SplitStrategy),
		CreatedAt:     row.CreatedAt.Time,
	}
}

func rowToShare(row generated.ExpenseShare) domain.Share {
	return domain.Share{
		UserID: row.UserID,
		Amount: numericToDecimal(row.Amount),
		Value:  numericToNullDecimal(row.Value),
	}
}
