package settlement

import (
	"container/heap"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// dustThreshold is the smallest balance magnitude that still needs settling.
var dustThreshold = decimal.New(1, -domain.MoneyScale)

// SuggestTransfers pairs debtors with creditors until every balance is
// settled. Each round matches the largest creditor with the largest debtor
// and moves the smaller of the two amounts; ties go to the lower user ID.
//
// The greedy pairing needs at most k-1 transfers for k unsettled users but is
// not guaranteed to find the fewest possible transfers.
//
// Balances are settled in whole cents. Sub-cent balances that add up to zero
// are rounded per user and the rounding difference is taken off the largest
// position on the heavier side. Balances that do not add up to zero are
// reported as domain.ErrInconsistentBalances and no transfers are returned.
func SuggestTransfers(balances domain.Balances) ([]domain.SettlementTransfer, error) {
	creditors := &positionHeap{}
	debtors := &positionHeap{}

	total := decimal.Zero
	for _, userID := range balances.UserIDs() {
		b := balances[userID]
		total = total.Add(b)
		if b.Abs().LessThan(dustThreshold) {
			continue
		}

		c := ToCents(b)
		switch {
		case c < 0:
			*creditors = append(*creditors, position{userID: userID, amount: -c})
		case c > 0:
			*debtors = append(*debtors, position{userID: userID, amount: c})
		}
	}

	if !total.IsZero() {
		return nil, fmt.Errorf("%w: balances sum to %s", domain.ErrInconsistentBalances, total)
	}

	heap.Init(creditors)
	heap.Init(debtors)
	if err := absorbRounding(creditors, debtors); err != nil {
		return nil, err
	}

	transfers := make([]domain.SettlementTransfer, 0, max(creditors.Len()+debtors.Len()-1, 0))
	for creditors.Len() > 0 && debtors.Len() > 0 {
		c := heap.Pop(creditors).(position)
		d := heap.Pop(debtors).(position)

		amount := min(c.amount, d.amount)
		transfers = append(transfers, domain.SettlementTransfer{
			FromUserID: d.userID,
			ToUserID:   c.userID,
			Amount:     amount.Decimal(),
		})

		if rest := c.amount - amount; rest > 0 {
			heap.Push(creditors, position{userID: c.userID, amount: rest})
		}
		if rest := d.amount - amount; rest > 0 {
			heap.Push(debtors, position{userID: d.userID, amount: rest})
		}
	}

	if leftover := append(*creditors, *debtors...); len(leftover) > 0 {
		return nil, fmt.Errorf("%w: %s still holds %s after matching",
			domain.ErrInconsistentBalances, leftover[0].userID, leftover[0].amount)
	}

	return transfers, nil
}

// absorbRounding evens out the cent totals of both sides after per-user
// rounding by shrinking the largest position on the side that is over.
func absorbRounding(creditors, debtors *positionHeap) error {
	residual := debtors.total() - creditors.total()
	if residual == 0 {
		return nil
	}

	side := debtors
	if residual < 0 {
		side = creditors
	}
	residual = residual.Abs()

	if side.Len() == 0 || (*side)[0].amount < residual {
		return fmt.Errorf("%w: rounding left %s unmatched", domain.ErrInconsistentBalances, residual)
	}
	if (*side)[0].amount == residual {
		heap.Pop(side)
		return nil
	}
	(*side)[0].amount -= residual
	heap.Fix(side, 0)
	return nil
}

// position is the outstanding magnitude of one creditor or debtor.
type position struct {
	userID string
	amount Cents
}

// positionHeap is a max-heap by amount, ties broken by ascending user ID.
type positionHeap []position

func (h positionHeap) Len() int { return len(h) }

func (h positionHeap) total() Cents {
	var sum Cents
	for _, p := range h {
		sum += p.amount
	}
	return sum
}

func (h positionHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	return h[i].userID < h[j].userID
}

func (h positionHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *positionHeap) Push(x any) { *h = append(*h, x.(position)) }

func (h *positionHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}
