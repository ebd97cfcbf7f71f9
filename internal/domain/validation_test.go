package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateName("Summer trip"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateName("   ")
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxNameLength+1)
		err := ValidateName(tooLong)
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("Ann@Example.org"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}

	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   error
	}{
		{"valid", decimal.RequireFromString("12.50"), nil},
		{"zero", decimal.Zero, ErrInvalidAmount},
		{"negative", decimal.NewFromInt(-5), ErrInvalidAmount},
		{"below minimum", decimal.RequireFromString("0.001"), ErrAmountTooSmall},
		{"above maximum", decimal.RequireFromString("10000000000"), ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRoundMoney(t *testing.T) {
	t.Parallel()

	got := RoundMoney(decimal.RequireFromString("3.335"))
	if !got.Equal(decimal.RequireFromString("3.34")) {
		t.Fatalf("expected half-up rounding to 3.34, got %s", got)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, err := ValidatePagination(0, -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", limit)
	}
}
