package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money handed from one member to another within an event.
// Only settled payments move balances.
type Payment struct {
	ID         string
	EventID    string
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	Settled    bool
	CreatedAt  time.Time
	SettledAt  *time.Time
}

// Validate validates payment request.
func (p *Payment) Validate() error {
	if p.FromUserID == p.ToUserID {
		return ErrSameUser
	}

	return ValidateAmount(p.Amount)
}

// Settle marks an unsettled payment as settled at the given time.
func (p *Payment) Settle(at time.Time) error {
	if p.Settled {
		return ErrPaymentAlreadySettled
	}

	p.Settled = true
	p.SettledAt = &at

	return nil
}
