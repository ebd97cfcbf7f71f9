package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/domain"
)

func expense(payer, amount string, shares ...domain.Share) *domain.Expense {
	return &domain.Expense{PayerID: payer, Amount: dec(amount), Shares: shares}
}

func share(userID, amount string) domain.Share {
	return domain.Share{UserID: userID, Amount: dec(amount)}
}

func TestComputeBalances(t *testing.T) {
	expenses := []*domain.Expense{
		expense("alice", "30.00", share("alice", "10.00"), share("bob", "10.00"), share("carol", "10.00")),
		expense("bob", "10.00", share("alice", "3.33"), share("bob", "3.33"), share("carol", "3.34")),
	}

	balances := ComputeBalances(expenses, nil)

	assert.Equal(t, "-16.67", balances.Get("alice").StringFixed(2))
	assert.Equal(t, "3.33", balances.Get("bob").StringFixed(2))
	assert.Equal(t, "13.34", balances.Get("carol").StringFixed(2))
	assert.True(t, balances.Sum().IsZero())
}

func TestComputeBalances_PayerOutsideShares(t *testing.T) {
	balances := ComputeBalances([]*domain.Expense{
		expense("alice", "20.00", share("bob", "10.00"), share("carol", "10.00")),
	}, nil)

	assert.Equal(t, "-20.00", balances.Get("alice").StringFixed(2))
	assert.Equal(t, "10.00", balances.Get("bob").StringFixed(2))
	assert.Len(t, balances, 3)
}

func TestComputeBalances_Payments(t *testing.T) {
	expenses := []*domain.Expense{
		expense("alice", "30.00", share("alice", "10.00"), share("bob", "10.00"), share("carol", "10.00")),
	}
	payments := []*domain.Payment{
		{FromUserID: "bob", ToUserID: "alice", Amount: dec("10.00"), Settled: true},
		{FromUserID: "carol", ToUserID: "alice", Amount: dec("10.00"), Settled: false},
	}

	balances := ComputeBalances(expenses, payments)

	assert.Equal(t, "-10.00", balances.Get("alice").StringFixed(2))
	assert.True(t, balances.Get("bob").IsZero())
	assert.Equal(t, "10.00", balances.Get("carol").StringFixed(2))
	assert.True(t, balances.Sum().IsZero())
}

func TestComputeBalances_OmitsUntouchedUsers(t *testing.T) {
	balances := ComputeBalances(nil, []*domain.Payment{
		{FromUserID: "bob", ToUserID: "alice", Amount: dec("5.00"), Settled: false},
	})

	require.Empty(t, balances)
}

func TestComputeBalances_KeepsSettledParticipants(t *testing.T) {
	balances := ComputeBalances([]*domain.Expense{
		expense("alice", "10.00", share("alice", "10.00")),
	}, nil)

	v, ok := balances["alice"]
	require.True(t, ok)
	assert.True(t, v.IsZero())
}
