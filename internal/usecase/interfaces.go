package usecase

import (
	"context"
	"time"

	"github.com/iho/gosplit/internal/domain"
)

// EventRepository defines data access for events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIDs returns the users that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// ExpenseRepository defines data access for expenses and their shares.
type ExpenseRepository interface {
	// Create stores the expense and its shares in allocation order.
	Create(ctx context.Context, tx Transaction, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Expense, error)
	ListByEventTx(ctx context.Context, tx Transaction, eventID string) ([]*domain.Expense, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	MarkSettled(ctx context.Context, tx Transaction, id string, settledAt time.Time) error
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Payment, error)
	ListByEventTx(ctx context.Context, tx Transaction, eventID string) ([]*domain.Payment, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	// BeginSnapshot starts a read-only transaction whose reads all observe
	// the same committed state.
	BeginSnapshot(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// UserNameCache caches user display names.
type UserNameCache interface {
	// GetNames returns the cached names among ids; misses are absent from the map.
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
	SetNames(ctx context.Context, names map[string]string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
