package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"spinstudio/internal/domain/pricing"
)

var studioPricing = pricing.Pricing{
	Individual: decimal.NewFromInt(15),
	Group2:     decimal.NewFromInt(13),
	Group3:     decimal.NewFromInt(11),
}

// TestPriceForPartySize covers every party size, including out-of-range values.
func TestPriceForPartySize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{-1, "0"},
		{0, "0"},
		{1, "15"},
		{2, "26"},
		{3, "33"},
		{4, "0"},
	}
	for _, tt := range tests {
		got := studioPricing.PriceForPartySize(tt.n)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("PriceForPartySize(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

// TestPriceForPartySize_Linear verifies total = n * per-person price for valid sizes.
func TestPriceForPartySize_Linear(t *testing.T) {
	p := pricing.Pricing{
		Individual: decimal.RequireFromString("15.50"),
		Group2:     decimal.RequireFromString("12.25"),
		Group3:     decimal.RequireFromString("10.10"),
	}
	for n := 1; n <= 3; n++ {
		want := p.PerPerson(n).Mul(decimal.NewFromInt(int64(n)))
		if got := p.PriceForPartySize(n); !got.Equal(want) {
			t.Errorf("PriceForPartySize(%d) = %s, want %s", n, got, want)
		}
	}
	if got := p.PriceForPartySize(3); got.String() != "30.3" {
		t.Errorf("PriceForPartySize(3) = %s, want 30.3", got)
	}
}

// TestPricing_Validate rejects negative tiers.
func TestPricing_Validate(t *testing.T) {
	if err := studioPricing.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	bad := studioPricing
	bad.Group3 = decimal.NewFromInt(-1)
	if err := bad.Validate(); err != pricing.ErrNegativePrice {
		t.Errorf("Validate error = %v, want ErrNegativePrice", err)
	}
}
