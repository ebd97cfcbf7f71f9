package settlement

import "github.com/iho/gosplit/internal/domain"

// ComputeBalances folds expenses and settled payments into a net balance per
// user. The payer of an expense moves toward credit by the full amount and
// each share owner moves toward debt by their share. A settled payment moves
// the sender toward credit and the receiver toward debt. Unsettled payments
// are ignored, and users that never appear are left out of the result.
func ComputeBalances(expenses []*domain.Expense, payments []*domain.Payment) domain.Balances {
	ledger := make(map[string]Cents)

	for _, e := range expenses {
		ledger[e.PayerID] -= ToCents(e.Amount)
		for _, s := range e.Shares {
			ledger[s.UserID] += ToCents(s.Amount)
		}
	}

	for _, p := range payments {
		if !p.Settled {
			continue
		}
		amount := ToCents(p.Amount)
		ledger[p.FromUserID] -= amount
		ledger[p.ToUserID] += amount
	}

	balances := make(domain.Balances, len(ledger))
	for userID, c := range ledger {
		balances[userID] = c.Decimal()
	}

	return balances
}
