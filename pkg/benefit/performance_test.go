package benefit

import (
	"testing"
	"time"
)

func benchmarkParams() Params {
	final := 97000.0
	return Params{
		Amount:      100000,
		Cashback:    CashbackParams{Percentage: 5, MaxAmount: 3000, RoundingMode: RoundingDown},
		GracePeriod: GracePeriodParams{Days: 55, AnnualRate: 29.9},
		Discount:    DiscountParams{FinalAmount: &final},
	}
}

// TestPerformance checks that a large batch of calculations stays fast.
func TestPerformance(t *testing.T) {
	if !testing.Verbose() {
		t.Skip("Skipping performance test. Run with -v to enable.")
	}

	params := benchmarkParams()
	const iterations = 1_000_000

	start := time.Now()
	var last Result
	for i := 0; i < iterations; i++ {
		last = TotalBenefit(params)
	}
	elapsed := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Calculations: %d", iterations)
	t.Logf("  Total time: %v", elapsed)
	t.Logf("  Per calculation: %v", elapsed/iterations)

	if elapsed > 5*time.Second {
		t.Errorf("Total processing time %v exceeds 5 second threshold", elapsed)
	}
	if last.BestOption != OptionGracePeriod {
		t.Errorf("Expected grace period to be best, got %s", last.BestOption)
	}
}

func BenchmarkTotalBenefit(b *testing.B) {
	params := benchmarkParams()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = TotalBenefit(params)
	}
}

func BenchmarkCashbackBenefit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CashbackBenefit(100000, 5, 3000, RoundingArithmetic)
	}
}
