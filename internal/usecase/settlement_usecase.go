package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/settlement"
)

// SettlementUseCase derives balances and repayment plans for an event.
type SettlementUseCase struct {
	txManager   TransactionManager
	eventRepo   EventRepository
	userRepo    UserRepository
	expenseRepo ExpenseRepository
	paymentRepo PaymentRepository
	nameCache   UserNameCache
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase. nameCache may be nil.
func NewSettlementUseCase(
	txManager TransactionManager,
	eventRepo EventRepository,
	userRepo UserRepository,
	expenseRepo ExpenseRepository,
	paymentRepo PaymentRepository,
	nameCache UserNameCache,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:   txManager,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
		nameCache:   nameCache,
		metrics:     metrics,
		logger:      logger,
	}
}

// ConsistencyReport is the result of checking that an event's balances net to zero.
type ConsistencyReport struct {
	CheckedAt  time.Time
	EventID    string
	Total      decimal.Decimal
	Members    int
	Consistent bool
}

// Balances returns every member's net position in the event, sorted by user ID.
func (uc *SettlementUseCase) Balances(ctx context.Context, eventID string) ([]domain.BalanceView, error) {
	balances, err := uc.balances(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ids := balances.UserIDs()
	names := uc.resolveNames(ctx, ids)

	views := make([]domain.BalanceView, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = UnknownUserName
		}
		views = append(views, domain.BalanceView{
			UserID:  id,
			Name:    name,
			Balance: balances[id],
		})
	}

	return views, nil
}

// SuggestTransfers returns the repayment plan that settles the event.
func (uc *SettlementUseCase) SuggestTransfers(ctx context.Context, eventID string) ([]domain.SettlementTransfer, error) {
	start := time.Now()

	balances, err := uc.balances(ctx, eventID)
	if err != nil {
		return nil, err
	}

	transfers, err := settlement.SuggestTransfers(balances)
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentBalances) {
			uc.recordFault(eventID, balances.Sum())
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementPlans.Inc()
		uc.metrics.TransfersSuggested.Observe(float64(len(transfers)))
		uc.metrics.PlanDuration.Observe(time.Since(start).Seconds())
	}

	uc.logger.Debug().
		Str("event_id", eventID).
		Int("members", len(balances)).
		Int("transfers", len(transfers)).
		Msg("settlement plan computed")

	return transfers, nil
}

// CheckConsistency verifies that the event's balances sum to zero.
func (uc *SettlementUseCase) CheckConsistency(ctx context.Context, eventID string) (*ConsistencyReport, error) {
	balances, err := uc.balances(ctx, eventID)
	if err != nil {
		return nil, err
	}

	total := balances.Sum()
	report := &ConsistencyReport{
		EventID:    eventID,
		Total:      total,
		Members:    len(balances),
		Consistent: total.IsZero(),
		CheckedAt:  time.Now().UTC(),
	}

	if !report.Consistent {
		uc.recordFault(eventID, total)
	}

	return report, nil
}

// balances aggregates the event's expenses and payments read from one snapshot.
func (uc *SettlementUseCase) balances(ctx context.Context, eventID string) (domain.Balances, error) {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.BeginSnapshot(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	expenses, err := uc.expenseRepo.ListByEventTx(txCtx, tx, eventID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByEventTx(txCtx, tx, eventID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return settlement.ComputeBalances(expenses, payments), nil
}

// resolveNames looks names up in the cache first and falls back to the
// user repository. Lookup failures degrade to missing names.
func (uc *SettlementUseCase) resolveNames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	missing := ids
	if uc.nameCache != nil {
		cached, err := uc.nameCache.GetNames(ctx, ids)
		if err != nil {
			uc.logger.Warn().Err(err).Msg("user name cache lookup failed")
		}

		missing = make([]string, 0, len(ids))
		for _, id := range ids {
			if name, ok := cached[id]; ok {
				names[id] = name
			} else {
				missing = append(missing, id)
			}
		}
		uc.observeCache(len(ids)-len(missing), len(missing))
	}

	if len(missing) == 0 {
		return names
	}

	users, err := uc.userRepo.GetByIDs(ctx, missing)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("user lookup for balances failed")
		return names
	}

	fetched := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
		fetched[u.ID] = u.Name
	}

	if uc.nameCache != nil && len(fetched) > 0 {
		if err := uc.nameCache.SetNames(ctx, fetched); err != nil {
			uc.logger.Warn().Err(err).Msg("user name cache fill failed")
		}
	}

	return names
}

func (uc *SettlementUseCase) observeCache(hits, misses int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.CacheLookups.WithLabelValues("hit").Add(float64(hits))
	uc.metrics.CacheLookups.WithLabelValues("miss").Add(float64(misses))
}

func (uc *SettlementUseCase) recordFault(eventID string, total decimal.Decimal) {
	if uc.metrics != nil {
		uc.metrics.ConsistencyFaults.Inc()
	}

	uc.logger.Error().
		Str("event_id", eventID).
		Str("total", total.String()).
		Msg("event balances do not sum to zero")
}
