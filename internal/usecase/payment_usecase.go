package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
)

// PaymentUseCase records money handed between members.
type PaymentUseCase struct {
	txManager   TransactionManager
	eventRepo   EventRepository
	userRepo    UserRepository
	paymentRepo PaymentRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	eventRepo EventRepository,
	userRepo UserRepository,
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
		logger:      logger,
	}
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	// Settled defaults to true when nil.
	Settled    *bool
	EventID    string
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// RecordPayment stores a payment and its outbox event in one transaction.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	now := time.Now().UTC()

	payment := &domain.Payment{
		ID:         uc.idGen.Generate(),
		EventID:    input.EventID,
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Amount:     domain.RoundMoney(input.Amount),
		Settled:    true,
		CreatedAt:  now,
	}
	if input.Settled != nil {
		payment.Settled = *input.Settled
	}
	if payment.Settled {
		payment.SettledAt = &now
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.eventRepo.GetByID(ctx, payment.EventID); err != nil {
		return nil, err
	}

	users, err := uc.userRepo.GetByIDs(ctx, []string{payment.FromUserID, payment.ToUserID})
	if err != nil {
		return nil, err
	}
	if len(users) != 2 {
		return nil, fmt.Errorf("%w: payer or payee", domain.ErrUserNotFound)
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   payment.ID,
		AggregateType: domain.AggregateTypePayment,
		EventType:     domain.EventTypePaymentRecorded,
		Payload: domain.PaymentRecordedEvent{
			PaymentID:  payment.ID,
			EventID:    payment.EventID,
			FromUserID: payment.FromUserID,
			ToUserID:   payment.ToUserID,
			Amount:     payment.Amount.StringFixed(domain.MoneyScale),
			Settled:    payment.Settled,
		}.ToPayload(),
		CreatedAt: now,
	}

	err = uc.retrier.Retry(ctx, func() error {
		return runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
			if err := uc.paymentRepo.Create(txCtx, tx, payment); err != nil {
				return err
			}
			return uc.outboxRepo.Create(txCtx, tx, event)
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.Inc()
	}

	uc.logger.Info().
		Str("payment_id", payment.ID).
		Str("event_id", payment.EventID).
		Str("from", payment.FromUserID).
		Str("to", payment.ToUserID).
		Str("amount", payment.Amount.StringFixed(domain.MoneyScale)).
		Bool("settled", payment.Settled).
		Msg("payment recorded")

	return payment, nil
}

// SettlePayment moves an unsettled payment to settled.
func (uc *PaymentUseCase) SettlePayment(ctx context.Context, id string) (*domain.Payment, error) {
	var settled *domain.Payment

	err := uc.retrier.Retry(ctx, func() error {
		return runInTx(ctx, uc.txManager, func(txCtx context.Context, tx Transaction) error {
			payment, err := uc.paymentRepo.GetByIDForUpdate(txCtx, tx, id)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if err := payment.Settle(now); err != nil {
				return err
			}

			if err := uc.paymentRepo.MarkSettled(txCtx, tx, payment.ID, now); err != nil {
				return err
			}

			event := &domain.OutboxEvent{
				ID:            uc.idGen.Generate(),
				AggregateID:   payment.ID,
				AggregateType: domain.AggregateTypePayment,
				EventType:     domain.EventTypePaymentSettled,
				Payload: domain.PaymentSettledEvent{
					PaymentID: payment.ID,
					EventID:   payment.EventID,
					Amount:    payment.Amount.StringFixed(domain.MoneyScale),
					SettledAt: now.Format(time.RFC3339),
				}.ToPayload(),
				CreatedAt: now,
			}
			if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
				return err
			}

			settled = payment
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsSettled.Inc()
	}

	uc.logger.Info().Str("payment_id", settled.ID).Str("event_id", settled.EventID).Msg("payment settled")

	return settled, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsByEvent lists the payments of an event, newest first.
func (uc *PaymentUseCase) ListPaymentsByEvent(ctx context.Context, eventID string) ([]*domain.Payment, error) {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListByEvent(ctx, eventID)
}
