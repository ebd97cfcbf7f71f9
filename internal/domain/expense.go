package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SplitStrategy selects how an expense amount is divided among participants.
type SplitStrategy string

const (
	SplitEqual      SplitStrategy = "EQUAL"
	SplitPercentage SplitStrategy = "PERCENTAGE"
	SplitRatio      SplitStrategy = "RATIO"
)

var validStrategies = map[SplitStrategy]bool{
	SplitEqual:      true,
	SplitPercentage: true,
	SplitRatio:      true,
}

// IsValid reports whether s is a known strategy.
func (s SplitStrategy) IsValid() bool {
	return validStrategies[s]
}

// NeedsValues reports whether every participant must carry a value.
func (s SplitStrategy) NeedsValues() bool {
	return s == SplitPercentage || s == SplitRatio
}

// ParseSplitStrategy parses a strategy name case-insensitively.
func ParseSplitStrategy(raw string) (SplitStrategy, error) {
	s := SplitStrategy(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unsupported split strategy %q", ErrInvalidInput, raw)
	}
	return s, nil
}

// ShareInput is one participant of an allocation request. Value holds the
// percentage or ratio weight and is ignored for equal splits.
type ShareInput struct {
	UserID string
	Value  decimal.NullDecimal
}

// Share is the amount a single participant owes for an expense.
type Share struct {
	UserID string
	Amount decimal.Decimal
	// Value is the raw percentage or ratio weight the share was computed from.
	Value decimal.NullDecimal
}

// Expense is a purchase fronted by Payer and divided among Shares.
type Expense struct {
	ID            string
	EventID       string
	PayerID       string
	Amount        decimal.Decimal
	Description   string
	SplitStrategy SplitStrategy
	Shares        []Share
	CreatedAt     time.Time
}

// ParticipantIDs returns the share owners in allocation order.
func (e *Expense) ParticipantIDs() []string {
	ids := make([]string, len(e.Shares))
	for i, s := range e.Shares {
		ids[i] = s.UserID
	}
	return ids
}

// SharesTotal returns the sum of all share amounts.
func (e *Expense) SharesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Shares {
		total = total.Add(s.Amount)
	}
	return total
}
