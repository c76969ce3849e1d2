package gst

import "testing"

func TestComputeLineParacetamolExample(t *testing.T) {
	// 10 units at 900 paise, 5% slab, no discount.
	line := ComputeLine(900, 10, 0, 5)

	if line.TaxableAmountPaise != 9000 {
		t.Fatalf("taxable: expected 9000, got %d", line.TaxableAmountPaise)
	}
	if line.CGSTRate != 2.5 || line.SGSTRate != 2.5 {
		t.Fatalf("rates: expected 2.5/2.5, got %v/%v", line.CGSTRate, line.SGSTRate)
	}
	if line.CGSTAmountPaise != 225 || line.SGSTAmountPaise != 225 {
		t.Fatalf("amounts: expected 225/225, got %d/%d", line.CGSTAmountPaise, line.SGSTAmountPaise)
	}
	if line.TotalPaise != 9450 {
		t.Fatalf("total: expected 9450, got %d", line.TotalPaise)
	}
}

func TestComputeLineZeroRate(t *testing.T) {
	line := ComputeLine(1250, 3, 0, 0)
	if line.CGSTAmountPaise != 0 || line.SGSTAmountPaise != 0 {
		t.Fatalf("expected zero tax, got %d/%d", line.CGSTAmountPaise, line.SGSTAmountPaise)
	}
	if line.TotalPaise != 3750 {
		t.Fatalf("total: expected 3750, got %d", line.TotalPaise)
	}
}

func TestHalfAmountRoundsHalfUp(t *testing.T) {
	cases := []struct {
		taxable int64
		rate    float64
		want    int64
	}{
		// 101 * 2.5% = 2.525 -> 3
		{taxable: 101, rate: 5, want: 3},
		// 100 * 2.5% = 2.5 -> 3 (half-up)
		{taxable: 100, rate: 5, want: 3},
		// 99 * 2.5% = 2.475 -> 2
		{taxable: 99, rate: 5, want: 2},
		// 83 * 6% = 4.98 -> 5
		{taxable: 83, rate: 12, want: 5},
		// 50 * 9% = 4.5 -> 5 (half-up)
		{taxable: 50, rate: 18, want: 5},
	}
	for _, tc := range cases {
		if got := HalfAmount(tc.taxable, tc.rate); got != tc.want {
			t.Fatalf("HalfAmount(%d, %v): expected %d, got %d", tc.taxable, tc.rate, tc.want, got)
		}
	}
}

func TestComputeLineWithDiscount(t *testing.T) {
	// 5 units at 2000 paise, 500 discount, 12% slab.
	line := ComputeLine(2000, 5, 500, 12)
	if line.TaxableAmountPaise != 9500 {
		t.Fatalf("taxable: expected 9500, got %d", line.TaxableAmountPaise)
	}
	// 9500 * 6% = 570 per half.
	if line.CGSTAmountPaise != 570 || line.SGSTAmountPaise != 570 {
		t.Fatalf("amounts: expected 570/570, got %d/%d", line.CGSTAmountPaise, line.SGSTAmountPaise)
	}
	if line.TotalPaise != 10640 {
		t.Fatalf("total: expected 10640, got %d", line.TotalPaise)
	}
}
