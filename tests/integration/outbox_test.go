package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/eventpublisher"
	"github.com/iho/gosplit/internal/usecase"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestOutboxEventsArePublished(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.db.TruncateAll(ctx)

	alice := s.db.CreateTestUser(ctx, "Alice")
	bob := s.db.CreateTestUser(ctx, "Bob")
	event := s.db.CreateTestEvent(ctx, "Lunch")

	expense, err := s.expenses.CreateExpense(ctx, usecase.CreateExpenseInput{
		EventID:       event.ID,
		PayerID:       alice.ID,
		SplitStrategy: domain.SplitEqual,
		Amount:        decimal.NewFromInt(20),
		Participants:  equalShares(alice.ID, bob.ID),
	})
	require.NoError(t, err)

	payment, err := s.payments.RecordPayment(ctx, usecase.RecordPaymentInput{
		EventID:    event.ID,
		FromUserID: bob.ID,
		ToUserID:   alice.ID,
		Amount:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	pending, err := s.outboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	assert.Equal(t, domain.EventTypeExpenseCreated, pending[0].EventType)
	assert.Equal(t, expense.ID, pending[0].AggregateID)
	assert.Equal(t, domain.AggregateTypeExpense, pending[0].AggregateType)
	assert.Equal(t, domain.EventTypePaymentRecorded, pending[1].EventType)
	assert.Equal(t, payment.ID, pending[1].AggregateID)
	assert.Equal(t, "10.00", pending[1].Payload["amount"])

	pub := &recordingPublisher{}
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: s.outboxRepo,
		Publisher:  pub,
		Metrics:    s.metrics,
		Logger:     zerolog.Nop(),
		Interval:   20 * time.Millisecond,
	})

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = publisher.Start(runCtx)
	}()

	require.Eventually(t, func() bool { return pub.count() == 2 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	<-done

	remaining, err := s.outboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, float64(2), testutil.ToFloat64(s.metrics.OutboxPublished))
}
