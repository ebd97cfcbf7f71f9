package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Balances maps a user ID to its signed net position within an event.
// Negative means the group owes the user (creditor); positive means the
// user owes the group (debtor). Absent users are implicitly zero.
type Balances map[string]decimal.Decimal

// Get returns the balance for userID, zero when absent.
func (b Balances) Get(userID string) decimal.Decimal {
	if v, ok := b[userID]; ok {
		return v
	}
	return decimal.Zero
}

// Sum returns the total of all balances.
func (b Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// UserIDs returns the keys in ascending order.
func (b Balances) UserIDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SettlementTransfer is a suggested payment from a debtor to a creditor.
type SettlementTransfer struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// BalanceView is a balance joined with the member's display name.
type BalanceView struct {
	UserID  string
	Name    string
	Balance decimal.Decimal
}
