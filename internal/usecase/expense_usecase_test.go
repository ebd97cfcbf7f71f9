package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/usecase"
	"github.com/iho/gosplit/internal/usecase/mocks"
)

type expenseFixture struct {
	txManager   *mocks.MockTransactionManager
	tx          *mocks.MockTransaction
	eventRepo   *mocks.MockEventRepository
	userRepo    *mocks.MockUserRepository
	expenseRepo *mocks.MockExpenseRepository
	outboxRepo  *mocks.MockOutboxRepository
	metrics     *metrics.Metrics
	logs        *bytes.Buffer
	uc          *usecase.ExpenseUseCase
}

func newExpenseFixture(t *testing.T) *expenseFixture {
	ctrl := gomock.NewController(t)

	f := &expenseFixture{
		txManager:   mocks.NewMockTransactionManager(ctrl),
		tx:          mocks.NewMockTransaction(ctrl),
		eventRepo:   mocks.NewMockEventRepository(ctrl),
		userRepo:    mocks.NewMockUserRepository(ctrl),
		expenseRepo: mocks.NewMockExpenseRepository(ctrl),
		outboxRepo:  mocks.NewMockOutboxRepository(ctrl),
		metrics:     metrics.NewWithRegisterer(prometheus.NewRegistry()),
		logs:        &bytes.Buffer{},
	}

	idGen := mocks.NewMockIDGenerator(ctrl)
	sequentialIDs(idGen, "id")

	retrier := mocks.NewMockRetrier(ctrl)
	passThroughRetrier(retrier)

	f.uc = usecase.NewExpenseUseCase(f.txManager, f.eventRepo, f.userRepo, f.expenseRepo, f.outboxRepo, idGen, retrier, f.metrics, zerolog.New(f.logs))

	return f
}

func users(ids ...string) []*domain.User {
	out := make([]*domain.User, len(ids))
	for i, id := range ids {
		out[i] = &domain.User{ID: id, Name: "user " + id}
	}
	return out
}

func equalSplit(ids ...string) []domain.ShareInput {
	out := make([]domain.ShareInput, len(ids))
	for i, id := range ids {
		out[i] = domain.ShareInput{UserID: id}
	}
	return out
}

func TestExpenseUseCase_CreateExpense(t *testing.T) {
	f := newExpenseFixture(t)
	ctx := context.Background()

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"alice", "bob", "carol"}).Return(users("alice", "bob", "carol"), nil)
	expectTx(f.txManager, f.tx, true)

	var stored *domain.Expense
	f.expenseRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ usecase.Transaction, e *domain.Expense) error {
			stored = e
			return nil
		})

	var outbox *domain.OutboxEvent
	f.outboxRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ usecase.Transaction, e *domain.OutboxEvent) error {
			outbox = e
			return nil
		})

	expense, err := f.uc.CreateExpense(ctx, usecase.CreateExpenseInput{
		EventID:       "ev-1",
		PayerID:       "alice",
		Description:   "dinner",
		SplitStrategy: domain.SplitEqual,
		Amount:        dec("10.00"),
		Participants:  equalSplit("alice", "bob", "carol"),
	})
	require.NoError(t, err)
	require.Same(t, stored, expense)

	require.Len(t, expense.Shares, 3)
	assert.Equal(t, "3.33", expense.Shares[0].Amount.StringFixed(2))
	assert.Equal(t, "3.33", expense.Shares[1].Amount.StringFixed(2))
	assert.Equal(t, "3.34", expense.Shares[2].Amount.StringFixed(2))
	assert.True(t, expense.SharesTotal().Equal(expense.Amount))
	for _, share := range expense.Shares {
		assert.False(t, share.Value.Valid, "equal split keeps no weight for %s", share.UserID)
	}
	assert.Contains(t, f.logs.String(), `"participants":["alice","bob","carol"]`)

	require.NotNil(t, outbox)
	assert.Equal(t, domain.EventTypeExpenseCreated, outbox.EventType)
	assert.Equal(t, expense.ID, outbox.AggregateID)
	assert.Equal(t, "10.00", outbox.Payload["amount"])
	assert.Equal(t, "EQUAL", outbox.Payload["split_strategy"])

	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ExpensesCreated.WithLabelValues("EQUAL")))
}

func TestExpenseUseCase_CreateExpense_PayerOutsideShares(t *testing.T) {
	f := newExpenseFixture(t)

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"alice", "bob", "carol"}).Return(users("alice", "bob", "carol"), nil)
	expectTx(f.txManager, f.tx, true)
	f.expenseRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil)
	f.outboxRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil)

	expense, err := f.uc.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		EventID:       "ev-1",
		PayerID:       "alice",
		SplitStrategy: domain.SplitRatio,
		Amount:        dec("90"),
		Participants: []domain.ShareInput{
			{UserID: "bob", Value: decimal.NewNullDecimal(dec("2"))},
			{UserID: "carol", Value: decimal.NewNullDecimal(dec("1"))},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, expense.ParticipantIDs())
	assert.Equal(t, "60.00", expense.Shares[0].Amount.StringFixed(2))
	assert.Equal(t, "30.00", expense.Shares[1].Amount.StringFixed(2))
}

func TestExpenseUseCase_CreateExpense_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateExpenseInput
		setup   func(f *expenseFixture)
		wantErr error
	}{
		{
			name: "unknown strategy",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "alice", SplitStrategy: "SHARES",
				Amount: dec("10"), Participants: equalSplit("alice"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "non-positive amount",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "alice", SplitStrategy: domain.SplitEqual,
				Amount: dec("0"), Participants: equalSplit("alice"),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "duplicate participant",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "alice", SplitStrategy: domain.SplitEqual,
				Amount: dec("10"), Participants: equalSplit("alice", "bob", "alice"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "no participants",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "alice", SplitStrategy: domain.SplitEqual,
				Amount: dec("10"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "percentage without value",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "alice", SplitStrategy: domain.SplitPercentage,
				Amount: dec("10"), Participants: equalSplit("alice", "bob"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing event",
			input: usecase.CreateExpenseInput{
				EventID: "ev-404", PayerID: "alice", SplitStrategy: domain.SplitEqual,
				Amount: dec("10"), Participants: equalSplit("alice"),
			},
			setup: func(f *expenseFixture) {
				f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-404").Return(nil, domain.ErrEventNotFound)
			},
			wantErr: domain.ErrEventNotFound,
		},
		{
			name: "missing payer",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "ghost", SplitStrategy: domain.SplitEqual,
				Amount: dec("10"), Participants: equalSplit("alice"),
			},
			setup: func(f *expenseFixture) {
				f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
				f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"ghost", "alice"}).Return(users("alice"), nil)
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "missing participant",
			input: usecase.CreateExpenseInput{
				EventID: "ev-1", PayerID: "alice", SplitStrategy: domain.SplitEqual,
				Amount: dec("10"), Participants: equalSplit("alice", "ghost"),
			},
			setup: func(f *expenseFixture) {
				f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
				f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"alice", "ghost"}).Return(users("alice"), nil)
			},
			wantErr: domain.ErrParticipantNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExpenseFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			expense, err := f.uc.CreateExpense(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, expense)
		})
	}
}

func TestExpenseUseCase_CreateExpense_RollsBackOnOutboxFailure(t *testing.T) {
	f := newExpenseFixture(t)

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.userRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(users("alice"), nil)
	expectTx(f.txManager, f.tx, false)
	f.expenseRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil)

	boom := errors.New("outbox unavailable")
	f.outboxRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(boom)

	_, err := f.uc.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		EventID: "ev-1", PayerID: "alice", SplitStrategy: domain.SplitEqual,
		Amount: dec("10"), Participants: equalSplit("alice"),
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, testutil.ToFloat64(f.metrics.ExpensesCreated.WithLabelValues("EQUAL")))
}

func TestExpenseUseCase_ListExpensesByEvent(t *testing.T) {
	f := newExpenseFixture(t)

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.expenseRepo.EXPECT().ListByEvent(gomock.Any(), "ev-1").Return([]*domain.Expense{{ID: "x1"}, {ID: "x2"}}, nil)

	expenses, err := f.uc.ListExpensesByEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
}

func TestExpenseUseCase_ListExpensesByEvent_MissingEvent(t *testing.T) {
	f := newExpenseFixture(t)

	f.eventRepo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, domain.ErrEventNotFound)

	_, err := f.uc.ListExpensesByEvent(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}
