package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall  = errors.New("amount below minimum allowed")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
	MaxAmount     = "9999999999.99" // NUMERIC(12,2)
	MinAmount     = "0.01"
	MoneyScale    = 2

	// Share weights are stored as NUMERIC(20,10).
	MaxShareValue   = "9999999999.9999999999"
	ShareValueScale = 10
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	minAmount = decimal.RequireFromString(MinAmount)
	maxAmount = decimal.RequireFromString(MaxAmount)
)

// ValidateName validates an event title or user name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateAmount validates an expense or payment amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// RoundMoney rounds an amount to cents, half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 100

	if limit <= 0 {
		limit = 20
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
