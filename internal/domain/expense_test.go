package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSplitStrategy(t *testing.T) {
	tests := []struct {
		raw       string
		want      SplitStrategy
		expectErr bool
	}{
		{raw: "equal", want: SplitEqual},
		{raw: " Percentage ", want: SplitPercentage},
		{raw: "RATIO", want: SplitRatio},
		{raw: "exact", expectErr: true},
		{raw: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSplitStrategy(tt.raw)
			if tt.expectErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSplitStrategy_NeedsValues(t *testing.T) {
	if SplitEqual.NeedsValues() {
		t.Error("equal split should not need values")
	}
	if !SplitPercentage.NeedsValues() || !SplitRatio.NeedsValues() {
		t.Error("percentage and ratio splits need values")
	}
}

func TestExpense_SharesTotal(t *testing.T) {
	e := &Expense{
		Shares: []Share{
			{UserID: "a", Amount: decimal.RequireFromString("3.33")},
			{UserID: "b", Amount: decimal.RequireFromString("3.33")},
			{UserID: "c", Amount: decimal.RequireFromString("3.34")},
		},
	}

	if !e.SharesTotal().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected total 10, got %s", e.SharesTotal())
	}

	ids := e.ParticipantIDs()
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("unexpected participant order: %v", ids)
	}
}
