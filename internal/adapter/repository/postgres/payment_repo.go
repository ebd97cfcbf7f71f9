package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/postgres/generated"
	"github.com/iho/gosplit/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return newPaymentRepository(pool)
}

func newPaymentRepository(db generated.DBTX) *PaymentRepository {
	return &PaymentRepository{queries: generated.New(db)}
}

// Create inserts a payment within a transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	return txQueries(tx).CreatePayment(ctx, generated.CreatePaymentParams{
		ID:         payment.ID,
		EventID:    payment.EventID,
		FromUserID: payment.FromUserID,
		ToUserID:   payment.ToUserID,
		Amount:     decimalToNumeric(payment.Amount),
		Settled:    payment.Settled,
		CreatedAt:  timeToPgTimestamptz(payment.CreatedAt),
		SettledAt:  timePtrToPgTimestamptz(payment.SettledAt),
	})
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// GetByIDForUpdate retrieves a payment by ID with a FOR UPDATE lock.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	row, err := txQueries(tx).GetPaymentByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// MarkSettled flips an unsettled payment to settled.
func (r *PaymentRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt time.Time) error {
	n, err := txQueries(tx).MarkPaymentSettled(ctx, generated.MarkPaymentSettledParams{
		ID:        id,
		SettledAt: timeToPgTimestamptz(settledAt),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrPaymentAlreadySettled
	}

	return nil
}

// ListByEvent lists an event's payments, newest first.
func (r *PaymentRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Payment, error) {
	return listPaymentsByEvent(ctx, r.queries, eventID)
}

// ListByEventTx is ListByEvent inside tx.
func (r *PaymentRepository) ListByEventTx(ctx context.Context, tx usecase.Transaction, eventID string) ([]*domain.Payment, error) {
	return listPaymentsByEvent(ctx, txQueries(tx), eventID)
}

func listPaymentsByEvent(ctx context.Context, queries *generated.Queries, eventID string) ([]*domain.Payment, error) {
	rows, err := queries.ListPaymentsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments, nil
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:         row.ID,
		EventID:    row.EventID,
		FromUserID: row.FromUserID,
		ToUserID:   row.ToUserID,
		Amount:     numericToDecimal(row.Amount),
		Settled:    row.Settled,
		CreatedAt:  row.CreatedAt.Time,
		SettledAt:  pgTimestamptzToPtr(row.SettledAt),
	}
}
