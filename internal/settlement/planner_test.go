package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosplit/internal/domain"
)

type flatTransfer struct {
	From, To, Amount string
}

func flatten(transfers []domain.SettlementTransfer) []flatTransfer {
	out := make([]flatTransfer, len(transfers))
	for i, tr := range transfers {
		out[i] = flatTransfer{tr.FromUserID, tr.ToUserID, tr.Amount.StringFixed(2)}
	}
	return out
}

func balancesOf(kv ...string) domain.Balances {
	b := make(domain.Balances, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		b[kv[i]] = dec(kv[i+1])
	}
	return b
}

func TestSuggestTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances domain.Balances
		want     []flatTransfer
	}{
		{
			name:     "one creditor two debtors",
			balances: balancesOf("A", "-30.00", "B", "10.00", "C", "20.00"),
			want:     []flatTransfer{{"C", "A", "20.00"}, {"B", "A", "10.00"}},
		},
		{
			name:     "two creditors one debtor",
			balances: balancesOf("A", "-5.00", "B", "-15.00", "C", "20.00"),
			want:     []flatTransfer{{"C", "B", "15.00"}, {"C", "A", "5.00"}},
		},
		{
			name:     "ties go to the lower user id",
			balances: balancesOf("d2", "10.00", "d1", "10.00", "c2", "-10.00", "c1", "-10.00"),
			want:     []flatTransfer{{"d1", "c1", "10.00"}, {"d2", "c2", "10.00"}},
		},
		{
			name:     "residual creditor is reinserted",
			balances: balancesOf("A", "-50.00", "B", "-10.00", "C", "35.00", "D", "25.00"),
			want: []flatTransfer{
				{"C", "A", "35.00"},
				{"D", "A", "15.00"},
				{"D", "B", "10.00"},
			},
		},
		{
			name:     "dust balances are ignored",
			balances: balancesOf("A", "-0.004", "B", "0.004", "C", "0"),
			want:     []flatTransfer{},
		},
		{
			name:     "empty input",
			balances: domain.Balances{},
			want:     []flatTransfer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := SuggestTransfers(tt.balances)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flatten(transfers))
		})
	}
}

func TestSuggestTransfers_SettlesEveryone(t *testing.T) {
	balances := balancesOf("A", "-40.00", "B", "-12.34", "C", "7.66", "D", "30.00", "E", "14.68")

	transfers, err := SuggestTransfers(balances)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(transfers), 4)

	remaining := make(map[string]Cents)
	for id, b := range balances {
		remaining[id] = ToCents(b)
	}
	for _, tr := range transfers {
		assert.True(t, tr.Amount.IsPositive())
		remaining[tr.FromUserID] -= ToCents(tr.Amount)
		remaining[tr.ToUserID] += ToCents(tr.Amount)
	}
	for id, c := range remaining {
		assert.Zero(t, c, "user %s not settled", id)
	}
}

func TestSuggestTransfers_InconsistentBalances(t *testing.T) {
	transfers, err := SuggestTransfers(balancesOf("A", "-30.00", "B", "10.00"))
	require.ErrorIs(t, err, domain.ErrInconsistentBalances)
	assert.Nil(t, transfers)

	_, err = SuggestTransfers(balancesOf("A", "5.00"))
	require.ErrorIs(t, err, domain.ErrInconsistentBalances)
}

func TestSuggestTransfers_SubCentBalances(t *testing.T) {
	tests := []struct {
		name     string
		balances domain.Balances
		want     []flatTransfer
	}{
		{
			name:     "creditor rounded up",
			balances: balancesOf("A", "-10.005", "B", "5.0025", "C", "5.0025"),
			want:     []flatTransfer{{"B", "A", "5.00"}, {"C", "A", "5.00"}},
		},
		{
			name:     "debtor rounded up",
			balances: balancesOf("A", "10.005", "B", "-5.0025", "C", "-5.0025"),
			want:     []flatTransfer{{"A", "B", "5.00"}, {"A", "C", "5.00"}},
		},
		{
			name:     "dust user folded into rounding",
			balances: balancesOf("A", "-10.00", "B", "9.996", "C", "0.004"),
			want:     []flatTransfer{{"B", "A", "10.00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := SuggestTransfers(tt.balances)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flatten(transfers))
		})
	}
}

func TestSuggestTransfers_SubCentImbalance(t *testing.T) {
	_, err := SuggestTransfers(balancesOf("A", "-10.005", "B", "10.00"))
	require.ErrorIs(t, err, domain.ErrInconsistentBalances)
}

func TestSuggestTransfers_DoesNotMutateInput(t *testing.T) {
	balances := balancesOf("A", "-30.00", "B", "10.00", "C", "20.00")

	_, err := SuggestTransfers(balances)
	require.NoError(t, err)

	assert.Equal(t, "-30.00", balances["A"].StringFixed(2))
	assert.Len(t, balances, 3)
}
