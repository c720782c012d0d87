package filter

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestStatsOddCount(t *testing.T) {
	buffer := filled(t, 5, 1, 2, 3, 4, 5)

	expectStat(t, "maximum", buffer.Maximum, 5)
	expectStat(t, "minimum", buffer.Minimum, 1)
	expectStat(t, "mean", buffer.Mean, 3)
	expectStat(t, "median", buffer.Median, 3)
	expectStat(t, "stdev", buffer.Stdev, 1)
	expectStat(t, "signal percentage", buffer.SignalPercentage, 33)
}

func TestStatsEvenCount(t *testing.T) {
	buffer := filled(t, 5, 1, 2, 3, 4)

	expectStat(t, "mean", buffer.Mean, 3)
	expectStat(t, "median", buffer.Median, 3)
	expectStat(t, "stdev", buffer.Stdev, 1)
}

func TestMedianEvenCountRoundsHalfUp(t *testing.T) {
	buffer := filled(t, 4, 40, 10, 30, 20)

	expectStat(t, "median", buffer.Median, 25)
	expectStat(t, "mean", buffer.Mean, 25)
	expectStat(t, "stdev", buffer.Stdev, 11)
	expectStat(t, "signal percentage", buffer.SignalPercentage, 44)
}

func TestMedianDoesNotReorderSamples(t *testing.T) {
	buffer := filled(t, 4, 9, 1, 5)
	if _, err := buffer.Median(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buffer.Values()
	if got[0] != 9 || got[1] != 1 || got[2] != 5 {
		t.Fatalf("expected insertion order to be kept, got %v", got)
	}
}

func TestStatsSingleSample(t *testing.T) {
	buffer := filled(t, 3, 42)

	expectStat(t, "mean", buffer.Mean, 42)
	expectStat(t, "median", buffer.Median, 42)
	expectStat(t, "stdev", buffer.Stdev, 0)
}

func TestStatsIgnoreEvictedSamples(t *testing.T) {
	buffer := filled(t, 10, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)

	expectStat(t, "minimum", buffer.Minimum, 2)
	expectStat(t, "maximum", buffer.Maximum, 11)
}

func TestStatsNegativeSamples(t *testing.T) {
	buffer := filled(t, 2, -1, -2)

	expectStat(t, "mean", buffer.Mean, -1)
	expectStat(t, "median", buffer.Median, -1)
	expectStat(t, "minimum", buffer.Minimum, -2)
}

func TestStatsEmptyBuffer(t *testing.T) {
	buffer := mustNew(t, 3)
	queries := map[string]func() (int64, error){
		"maximum":           buffer.Maximum,
		"minimum":           buffer.Minimum,
		"mean":              buffer.Mean,
		"median":            buffer.Median,
		"stdev":             buffer.Stdev,
		"signal percentage": buffer.SignalPercentage,
	}
	for name, query := range queries {
		if _, err := query(); !errors.Is(err, ErrEmpty) {
			t.Fatalf("%s: expected ErrEmpty, got %v", name, err)
		}
	}
	if _, err := buffer.Summarize(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("summarize: expected ErrEmpty, got %v", err)
	}

	buffer.Put(7)
	expectStat(t, "mean", buffer.Mean, 7)
}

func TestSignalPercentageNoiseless(t *testing.T) {
	buffer := filled(t, 4, 7, 7, 7, 7)

	expectStat(t, "stdev", buffer.Stdev, 0)
	expectStat(t, "signal percentage", buffer.SignalPercentage, 100)
}

func TestSignalPercentageZeroMean(t *testing.T) {
	buffer := filled(t, 2, -1, 1)

	if _, err := buffer.SignalPercentage(); !errors.Is(err, ErrZeroMean) {
		t.Fatalf("expected ErrZeroMean, got %v", err)
	}
	summary, err := buffer.Summarize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.SignalOK {
		t.Fatalf("expected signal percentage to be unavailable")
	}
	if summary.Stdev != 1 {
		t.Fatalf("expected stdev 1, got %d", summary.Stdev)
	}
}

func TestSummarizeMatchesQueries(t *testing.T) {
	buffer := filled(t, 5, 1, 2, 3, 4, 5)
	summary, err := buffer.Summarize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Summary{
		Count:            5,
		Capacity:         5,
		Minimum:          1,
		Maximum:          5,
		Mean:             3,
		Median:           3,
		Stdev:            1,
		SignalPercentage: 33,
		SignalOK:         true,
	}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
}

func TestStatsStayWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	buffer := mustNew(t, 17)
	for i := 0; i < 500; i++ {
		buffer.Put(rng.Int63n(2001) - 1000)
		summary, err := buffer.Summarize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Mean < summary.Minimum || summary.Mean > summary.Maximum {
			t.Fatalf("mean %d outside [%d, %d]", summary.Mean, summary.Minimum, summary.Maximum)
		}
		if summary.Median < summary.Minimum || summary.Median > summary.Maximum {
			t.Fatalf("median %d outside [%d, %d]", summary.Median, summary.Minimum, summary.Maximum)
		}
		if summary.Stdev < 0 {
			t.Fatalf("negative stdev %d", summary.Stdev)
		}
	}
}

func TestStatsLargeSpread(t *testing.T) {
	buffer := filled(t, 2, 0, 1_000_000_000)

	expectStat(t, "mean", buffer.Mean, 500_000_000)
	expectStat(t, "median", buffer.Median, 500_000_000)
	expectStat(t, "stdev", buffer.Stdev, 500_000_000)
	expectStat(t, "signal percentage", buffer.SignalPercentage, 100)

	negative := filled(t, 2, 0, -1_000_000_000)
	expectStat(t, "mean", negative.Mean, -500_000_000)
	expectStat(t, "stdev", negative.Stdev, 500_000_000)
	expectStat(t, "signal percentage", negative.SignalPercentage, -100)
}

func TestStatsNearInt64Limits(t *testing.T) {
	high := filled(t, 2, 4e18, 4e18)
	expectStat(t, "mean", high.Mean, 4e18)
	expectStat(t, "median", high.Median, 4e18)
	expectStat(t, "stdev", high.Stdev, 0)

	low := filled(t, 2, -4e18, -4e18)
	expectStat(t, "mean", low.Mean, -4e18)
	expectStat(t, "median", low.Median, -4e18)

	pair := filled(t, 2, 1e18, 1e18)
	expectStat(t, "median", pair.Median, 1e18)

	spread := filled(t, 2, -4e18, 4e18)
	expectStat(t, "mean", spread.Mean, 0)
	expectStat(t, "median", spread.Median, 0)
	expectStat(t, "stdev", spread.Stdev, 4e18)
	if _, err := spread.SignalPercentage(); !errors.Is(err, ErrZeroMean) {
		t.Fatalf("expected ErrZeroMean, got %v", err)
	}
}

func TestStdevOverflow(t *testing.T) {
	buffer := filled(t, 2, math.MinInt64, math.MaxInt64)

	expectStat(t, "mean", buffer.Mean, 0)
	if _, err := buffer.Stdev(); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if _, err := buffer.Summarize(); !errors.Is(err, ErrOverflow) {
		t.Fatalf("summarize: expected ErrOverflow, got %v", err)
	}
}

func TestSignalPercentageOverflow(t *testing.T) {
	buffer := filled(t, 3, -4e18, 4e18, 10)

	if _, err := buffer.SignalPercentage(); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	summary, err := buffer.Summarize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.SignalOK {
		t.Fatalf("expected signal percentage to be unavailable")
	}
}

func TestStatsStayWithinRangeFullInt64(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	buffer := mustNew(t, 9)
	for i := 0; i < 500; i++ {
		buffer.Put(int64(rng.Uint64()))
		minimum, _ := buffer.Minimum()
		maximum, _ := buffer.Maximum()
		mean, err := buffer.Mean()
		if err != nil {
			t.Fatalf("mean: %v", err)
		}
		median, err := buffer.Median()
		if err != nil {
			t.Fatalf("median: %v", err)
		}
		if mean < minimum || mean > maximum {
			t.Fatalf("mean %d outside [%d, %d]", mean, minimum, maximum)
		}
		if median < minimum || median > maximum {
			t.Fatalf("median %d outside [%d, %d]", median, minimum, maximum)
		}
	}
}

func filled(t *testing.T, capacity int, values ...int64) *Buffer {
	t.Helper()
	buffer := mustNew(t, capacity)
	for _, v := range values {
		buffer.Put(v)
	}
	return buffer
}

func expectStat(t *testing.T, name string, query func() (int64, error), want int64) {
	t.Helper()
	got, err := query()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	if got != want {
		t.Fatalf("%s: expected %d, got %d", name, want, got)
	}
}
