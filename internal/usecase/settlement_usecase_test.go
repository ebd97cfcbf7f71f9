package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
	"github.com/iho/gosplit/internal/usecase/mocks"
)

type settlementFixture struct {
	txManager   *mocks.MockTransactionManager
	tx          *mocks.MockTransaction
	eventRepo   *mocks.MockEventRepository
	userRepo    *mocks.MockUserRepository
	expenseRepo *mocks.MockExpenseRepository
	paymentRepo *mocks.MockPaymentRepository
	cache       *mocks.MockUserNameCache
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	ctrl := gomock.NewController(t)

	return &settlementFixture{
		txManager:   mocks.NewMockTransactionManager(ctrl),
		tx:          mocks.NewMockTransaction(ctrl),
		eventRepo:   mocks.NewMockEventRepository(ctrl),
		userRepo:    mocks.NewMockUserRepository(ctrl),
		expenseRepo: mocks.NewMockExpenseRepository(ctrl),
		paymentRepo: mocks.NewMockPaymentRepository(ctrl),
		cache:       mocks.NewMockUserNameCache(ctrl),
	}
}

func (f *settlementFixture) useCase(withCache bool) *usecase.SettlementUseCase {
	var cache usecase.UserNameCache
	if withCache {
		cache = f.cache
	}
	return usecase.NewSettlementUseCase(f.txManager, f.eventRepo, f.userRepo, f.expenseRepo, f.paymentRepo, cache, nil, nopLogger)
}

// expectSnapshot serves expenses and payments for ev-1 from a snapshot transaction.
func (f *settlementFixture) expectSnapshot(expenses []*domain.Expense, payments []*domain.Payment) {
	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.txManager.EXPECT().BeginSnapshot(gomock.Any()).Return(f.tx, nil)
	f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	f.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	f.expenseRepo.EXPECT().ListByEventTx(gomock.Any(), f.tx, "ev-1").Return(expenses, nil)
	f.paymentRepo.EXPECT().ListByEventTx(gomock.Any(), f.tx, "ev-1").Return(payments, nil)
}

// dinner: alice paid 30 split equally between alice, bob and carol.
func dinner() []*domain.Expense {
	return []*domain.Expense{{
		ID:      "x1",
		PayerID: "alice",
		Amount:  dec("30"),
		Shares: []domain.Share{
			{UserID: "alice", Amount: dec("10")},
			{UserID: "bob", Amount: dec("10")},
			{UserID: "carol", Amount: dec("10")},
		},
	}}
}

func TestSettlementUseCase_Balances(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot(dinner(), []*domain.Payment{
		{FromUserID: "bob", ToUserID: "alice", Amount: dec("10"), Settled: true},
		{FromUserID: "carol", ToUserID: "alice", Amount: dec("10"), Settled: false},
	})
	f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"alice", "bob", "carol"}).Return([]*domain.User{
		{ID: "alice", Name: "Alice"},
		{ID: "carol", Name: "Carol"},
	}, nil)

	views, err := f.useCase(false).Balances(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "alice", views[0].UserID)
	assert.Equal(t, "Alice", views[0].Name)
	assert.Equal(t, "-10.00", views[0].Balance.StringFixed(2))

	assert.Equal(t, "bob", views[1].UserID)
	assert.Equal(t, usecase.UnknownUserName, views[1].Name)
	assert.True(t, views[1].Balance.IsZero())

	assert.Equal(t, "carol", views[2].UserID)
	assert.Equal(t, "10.00", views[2].Balance.StringFixed(2))
}

func TestSettlementUseCase_Balances_UsesNameCache(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot(dinner(), nil)

	f.cache.EXPECT().GetNames(gomock.Any(), []string{"alice", "bob", "carol"}).Return(map[string]string{"alice": "Alice", "bob": "Bob"}, nil)
	f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"carol"}).Return([]*domain.User{{ID: "carol", Name: "Carol"}}, nil)
	f.cache.EXPECT().SetNames(gomock.Any(), map[string]string{"carol": "Carol"}).Return(nil)

	views, err := f.useCase(true).Balances(context.Background(), "ev-1")
	require.NoError(t, err)

	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names)
}

func TestSettlementUseCase_Balances_CacheFailureFallsBack(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot(dinner(), nil)

	f.cache.EXPECT().GetNames(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	f.userRepo.EXPECT().GetByIDs(gomock.Any(), []string{"alice", "bob", "carol"}).Return(users("alice", "bob", "carol"), nil)
	f.cache.EXPECT().SetNames(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	views, err := f.useCase(true).Balances(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "user bob", views[1].Name)
}

func TestSettlementUseCase_Balances_EmptyEvent(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot(nil, nil)

	views, err := f.useCase(true).Balances(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestSettlementUseCase_SuggestTransfers(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot(dinner(), nil)

	transfers, err := f.useCase(false).SuggestTransfers(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	assert.Equal(t, "bob", transfers[0].FromUserID)
	assert.Equal(t, "alice", transfers[0].ToUserID)
	assert.Equal(t, "10.00", transfers[0].Amount.StringFixed(2))
	assert.Equal(t, "carol", transfers[1].FromUserID)
	assert.Equal(t, "alice", transfers[1].ToUserID)
}

func TestSettlementUseCase_SuggestTransfers_Inconsistent(t *testing.T) {
	f := newSettlementFixture(t)
	// Shares that do not add up to the amount leave a residue no plan can settle.
	f.expectSnapshot([]*domain.Expense{{
		PayerID: "alice",
		Amount:  dec("30"),
		Shares:  []domain.Share{{UserID: "bob", Amount: dec("20")}},
	}}, nil)

	transfers, err := f.useCase(false).SuggestTransfers(context.Background(), "ev-1")
	require.ErrorIs(t, err, domain.ErrInconsistentBalances)
	assert.Nil(t, transfers)
}

func TestSettlementUseCase_SuggestTransfers_MissingEvent(t *testing.T) {
	f := newSettlementFixture(t)
	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-9").Return(nil, domain.ErrEventNotFound)

	_, err := f.useCase(false).SuggestTransfers(context.Background(), "ev-9")
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestSettlementUseCase_CheckConsistency(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot(dinner(), nil)

	report, err := f.useCase(false).CheckConsistency(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.True(t, report.Total.IsZero())
	assert.Equal(t, 3, report.Members)
}

func TestSettlementUseCase_CheckConsistency_Fault(t *testing.T) {
	f := newSettlementFixture(t)
	f.expectSnapshot([]*domain.Expense{{
		PayerID: "alice",
		Amount:  dec("30"),
		Shares:  []domain.Share{{UserID: "bob", Amount: dec("29.99")}},
	}}, nil)

	report, err := f.useCase(false).CheckConsistency(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, "-0.01", report.Total.StringFixed(2))
}

func TestSettlementUseCase_SnapshotReadFailure(t *testing.T) {
	f := newSettlementFixture(t)
	f.eventRepo.EXPECT().GetByID(gomock.Any(), "ev-1").Return(&domain.Event{ID: "ev-1"}, nil)
	f.txManager.EXPECT().BeginSnapshot(gomock.Any()).Return(f.tx, nil)
	f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	boom := errors.New("connection reset")
	f.expenseRepo.EXPECT().ListByEventTx(gomock.Any(), f.tx, "ev-1").Return(nil, boom)

	_, err := f.useCase(false).CheckConsistency(context.Background(), "ev-1")
	require.ErrorIs(t, err, boom)
}
