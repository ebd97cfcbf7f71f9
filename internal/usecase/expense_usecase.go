package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/settlement"
)

// ExpenseUseCase records expenses and splits them into shares.
type ExpenseUseCase struct {
	txManager   TransactionManager
	eventRepo   EventRepository
	userRepo    UserRepository
	expenseRepo ExpenseRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	eventRepo EventRepository,
	userRepo UserRepository,
	expenseRepo ExpenseRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	EventID       string
	PayerID       string
	Description   string
	SplitStrategy domain.SplitStrategy
	Amount        decimal.Decimal
	Participants  []domain.ShareInput
}

// CreateExpense validates the request, allocates shares and stores the
// expense with its outbox event in one transaction.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	// 0. Validate inputs before touching storage
	if !input.SplitStrategy.IsValid() {
		return nil, fmt.Errorf("%w: unsupported split strategy %q", domain.ErrInvalidInput, input.SplitStrategy)
	}

	amount := domain.RoundMoney(input.Amount)
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if err := checkDistinct(input.Participants); err != nil {
		return nil, err
	}

	// 1. Allocate shares
	shares, err := settlement.Allocate(amount, input.SplitStrategy, input.Participants)
	if err != nil {
		return nil, err
	}

	// 2. Resolve event, payer and participants
	if _, err := uc.eventRepo.GetByID(ctx, input.EventID); err != nil {
		return nil, err
	}

	if err := uc.requireUsers(ctx, input.PayerID, input.Participants); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:            uc.idGen.Generate(),
		EventID:       input.EventID,
		PayerID:       input.PayerID,
		Amount:        amount,
		Description:   input.Description,
		SplitStrategy: input.SplitStrategy,
		Shares:        shares,
		CreatedAt:     now,
	}

	shareAmounts := make(map[string]string, len(shares))
	for _, s := range shares {
		shareAmounts[s.UserID] = s.Amount.StringFixed(domain.MoneyScale)
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   expense.ID,
		AggregateType: domain.AggregateTypeExpense,
		EventType:     domain.EventTypeExpenseCreated,
		Payload: domain.ExpenseCreatedEvent{
			ExpenseID:     expense.ID,
			EventID:       expense.EventID,
			PayerID:       expense.PayerID,
			Amount:        expense.Amount.StringFixed(domain.MoneyScale),
			SplitStrategy: string(expense.SplitStrategy),
			Shares:        shareAmounts,
		}.ToPayload(),
		CreatedAt: now,
	}

	// 3. Persist atomically, retrying on deadlock or serialization failure
	err = uc.retrier.Retry(ctx, func() error {
		return runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
			if err := uc.expenseRepo.Create(txCtx, tx, expense); err != nil {
				return err
			}
			return uc.outboxRepo.Create(txCtx, tx, event)
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.WithLabelValues(string(expense.SplitStrategy)).Inc()
		uc.metrics.ExpenseAmount.Observe(expense.Amount.InexactFloat64())
	}

	uc.logger.Info().
		Str("expense_id", expense.ID).
		Str("event_id", expense.EventID).
		Str("payer_id", expense.PayerID).
		Str("amount", expense.Amount.StringFixed(domain.MoneyScale)).
		Str("strategy", string(expense.SplitStrategy)).
		Strs("participants", expense.ParticipantIDs()).
		Int("shares", len(expense.Shares)).
		Msg("expense created")

	return expense, nil
}

// GetExpense retrieves an expense with its shares.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ListExpensesByEvent lists the expenses of an event, newest first.
func (uc *ExpenseUseCase) ListExpensesByEvent(ctx context.Context, eventID string) ([]*domain.Expense, error) {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	return uc.expenseRepo.ListByEvent(ctx, eventID)
}

func (uc *ExpenseUseCase) requireUsers(ctx context.Context, payerID string, participants []domain.ShareInput) error {
	ids := make([]string, 0, len(participants)+1)
	ids = append(ids, payerID)
	for _, p := range participants {
		if p.UserID != payerID {
			ids = append(ids, p.UserID)
		}
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	found := make(map[string]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}

	if !found[payerID] {
		return fmt.Errorf("%w: payer %s", domain.ErrUserNotFound, payerID)
	}

	for _, id := range ids {
		if !found[id] {
			return fmt.Errorf("%w: %s", domain.ErrParticipantNotFound, id)
		}
	}

	return nil
}

func checkDistinct(participants []domain.ShareInput) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.UserID == "" {
			return fmt.Errorf("%w: participant user id is required", domain.ErrInvalidInput)
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: participant %s listed more than once", domain.ErrInvalidInput, p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}
