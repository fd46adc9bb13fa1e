package sim

import (
	"math"
	"testing"
	"time"
)

func TestJainIndex_PerfectlyEvenDistribution_IsOne(t *testing.T) {
	if got := JainIndex([]float64{5, 5, 5, 5}); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("JainIndex(even): got %f, want 1.0", got)
	}
}

func TestJainIndex_SingleLoadedServer_IsOneOverN(t *testing.T) {
	// All load on one of four servers: (x)²/(4·x²) = 1/4
	if got := JainIndex([]float64{12, 0, 0, 0}); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("JainIndex(skewed): got %f, want 0.25", got)
	}
}

func TestJainIndex_AllZeroOrEmpty_IsZero(t *testing.T) {
	if got := JainIndex([]float64{0, 0, 0}); got != 0 {
		t.Errorf("JainIndex(zeros): got %f, want 0", got)
	}
	if got := JainIndex(nil); got != 0 {
		t.Errorf("JainIndex(nil): got %f, want 0", got)
	}
}

func TestJainIndex_AlwaysWithinUnitInterval(t *testing.T) {
	cases := [][]float64{
		{1},
		{1, 2, 3, 4},
		{100, 1},
		{7, 7, 7, 0},
	}
	for _, xs := range cases {
		got := JainIndex(xs)
		if got <= 0 || got > 1+1e-12 {
			t.Errorf("JainIndex(%v): got %f, want value in (0, 1]", xs, got)
		}
	}
}

func TestComputeMetrics_ReducesPoolState(t *testing.T) {
	// GIVEN two servers that processed [1000B] and [1000B, 500B] at 1000 B/s
	a := NewServer("A", 1000)
	_ = a.Receive(1, 1000)
	a.Close()
	if err := a.Run(); err != nil {
		t.Fatalf("Run A: %v", err)
	}
	b := NewServer("B", 1000)
	_ = b.Receive(2, 1000)
	_ = b.Receive(3, 500)
	b.Close()
	if err := b.Run(); err != nil {
		t.Fatalf("Run B: %v", err)
	}

	// WHEN metrics are computed over a 1-second run
	m := ComputeMetrics([]*Server{a, b}, time.Second)

	// THEN the tuple reduces every individual result
	if want := (1.0 + 1.0 + 0.5) / 3; math.Abs(m.AverageLatency-want) > 1e-9 {
		t.Errorf("AverageLatency: got %f, want %f", m.AverageLatency, want)
	}
	if math.Abs(m.Throughput-3.0) > 1e-9 {
		t.Errorf("Throughput: got %f, want 3.0", m.Throughput)
	}
	if want := JainIndex([]float64{1, 2}); math.Abs(m.FairnessIndex-want) > 1e-9 {
		t.Errorf("FairnessIndex: got %f, want %f", m.FairnessIndex, want)
	}
}

func TestComputeMetrics_NoRequestsProcessed_AllZero(t *testing.T) {
	pool := []*Server{NewServer("A", 1000), NewServer("B", 500)}
	m := ComputeMetrics(pool, time.Second)
	if m.AverageLatency != 0 || m.Throughput != 0 || m.FairnessIndex != 0 {
		t.Errorf("metrics over idle pool: got %+v, want all zero", m)
	}
}

func TestNewDistribution_EmptyInput_ZeroValue(t *testing.T) {
	d := NewDistribution(nil)
	if d.Count != 0 || d.Mean != 0 || d.Max != 0 {
		t.Errorf("NewDistribution(nil): got %+v, want zero value", d)
	}
}

func TestNewDistribution_ComputesSummary(t *testing.T) {
	d := NewDistribution([]float64{4, 1, 3, 2})
	if d.Count != 4 {
		t.Errorf("Count: got %d, want 4", d.Count)
	}
	if math.Abs(d.Mean-2.5) > 1e-9 {
		t.Errorf("Mean: got %f, want 2.5", d.Mean)
	}
	if d.Min != 1 || d.Max != 4 {
		t.Errorf("Min/Max: got %f/%f, want 1/4", d.Min, d.Max)
	}
	if math.Abs(d.P50-2.5) > 1e-9 {
		t.Errorf("P50: got %f, want 2.5", d.P50)
	}
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	// rank(95) = 0.95 * 3 = 2.85 → 30 + 0.85*10
	if got, want := percentile(sorted, 95), 38.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("percentile 95: got %f, want %f", got, want)
	}
	if got := percentile([]float64{7}, 99); got != 7 {
		t.Errorf("percentile of singleton: got %f, want 7", got)
	}
}
