package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// fractionPrecision is the number of fractional digits kept in per-share
// fractions before the result is rounded to cents.
const fractionPrecision = 10

var (
	hundred       = decimal.NewFromInt(100)
	maxAmount     = decimal.RequireFromString(domain.MaxAmount)
	maxShareValue = decimal.RequireFromString(domain.MaxShareValue)
)

// Allocate divides amount among participants according to strategy and
// returns one share per participant, in input order.
//
// Every share but the last is rounded half-up to cents on its own; the last
// participant takes whatever remains, so the shares always add up to amount
// exactly. Reordering participants can therefore move a cent between them.
// Amounts above domain.MaxAmount are rejected. Shares keep their weight only
// for strategies that use one.
func Allocate(amount decimal.Decimal, strategy domain.SplitStrategy, participants []domain.ShareInput) ([]domain.Share, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", domain.ErrInvalidInput)
	}

	amount = domain.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if amount.GreaterThan(maxAmount) {
		return nil, fmt.Errorf("%w: amount exceeds %s", domain.ErrInvalidInput, domain.MaxAmount)
	}

	if strategy.NeedsValues() {
		if err := requireValues(participants); err != nil {
			return nil, err
		}
	}

	ideal, err := idealShare(amount, strategy, participants)
	if err != nil {
		return nil, err
	}

	total := ToCents(amount)
	last := len(participants) - 1
	shares := make([]domain.Share, len(participants))

	var assigned Cents
	for i, p := range participants {
		share := total - assigned
		if i != last {
			share = ToCents(ideal(i))
		}
		assigned += share

		shares[i] = domain.Share{UserID: p.UserID, Amount: share.Decimal()}
		if strategy.NeedsValues() {
			shares[i].Value = p.Value
		}
	}

	return shares, nil
}

// idealShare returns a function yielding the unrounded share of participant i.
func idealShare(amount decimal.Decimal, strategy domain.SplitStrategy, participants []domain.ShareInput) (func(i int) decimal.Decimal, error) {
	switch strategy {
	case domain.SplitEqual:
		n := decimal.NewFromInt(int64(len(participants)))
		base := amount.DivRound(n, fractionPrecision)
		return func(int) decimal.Decimal { return base }, nil

	case domain.SplitPercentage:
		return func(i int) decimal.Decimal {
			pct := participants[i].Value.Decimal.DivRound(hundred, fractionPrecision)
			return amount.Mul(pct)
		}, nil

	case domain.SplitRatio:
		sum := decimal.Zero
		for _, p := range participants {
			sum = sum.Add(p.Value.Decimal)
		}
		if !sum.IsPositive() {
			return nil, fmt.Errorf("%w: invalid ratio totals", domain.ErrInvalidInput)
		}
		return func(i int) decimal.Decimal {
			frac := participants[i].Value.Decimal.DivRound(sum, fractionPrecision)
			return amount.Mul(frac)
		}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported split strategy %q", domain.ErrInvalidInput, strategy)
	}
}

func requireValues(participants []domain.ShareInput) error {
	for _, p := range participants {
		if !p.Value.Valid {
			return fmt.Errorf("%w: missing value for share of user %s", domain.ErrInvalidInput, p.UserID)
		}
		v := p.Value.Decimal
		if v.IsNegative() {
			return fmt.Errorf("%w: negative value for share of user %s", domain.ErrInvalidInput, p.UserID)
		}
		if v.GreaterThan(maxShareValue) {
			return fmt.Errorf("%w: value for share of user %s exceeds %s", domain.ErrInvalidInput, p.UserID, domain.MaxShareValue)
		}
		if !v.Equal(v.Truncate(domain.ShareValueScale)) {
			return fmt.Errorf("%w: value for share of user %s has more than %d decimal places",
				domain.ErrInvalidInput, p.UserID, domain.ShareValueScale)
		}
	}
	return nil
}
