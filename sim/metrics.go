package sim

import (
	"math"
	"sort"
	"time"
)

// Metrics is the comparative score of one policy run. Immutable after
// ComputeMetrics returns it.
type Metrics struct {
	AverageLatency float64 // mean latency over every completed request, seconds
	Throughput     float64 // completed requests per wall-clock second of the run
	FairnessIndex  float64 // Jain's index over per-server request totals, (0,1]
}

// ComputeMetrics reduces the post-run state of the pool into the metrics
// tuple. Duration is wall clock from dispatcher start to last worker exit.
func ComputeMetrics(pool []*Server, duration time.Duration) Metrics {
	total := 0
	latencySum := 0.0
	counts := make([]float64, 0, len(pool))
	for _, s := range pool {
		n := s.TotalRequests()
		total += n
		latencySum += s.AvgLatency() * float64(n)
		counts = append(counts, float64(n))
	}

	m := Metrics{FairnessIndex: JainIndex(counts)}
	if total > 0 {
		m.AverageLatency = latencySum / float64(total)
	}
	if secs := duration.Seconds(); secs > 0 {
		m.Throughput = float64(total) / secs
	}
	return m
}

// JainIndex computes Jain's fairness index (Σx)² / (n·Σx²) over per-server
// request totals. 1.0 means perfectly even distribution; defined as 0 for an
// empty input or all-zero totals to avoid a 0/0 result.
func JainIndex(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	sumSq := 0.0
	for _, x := range xs {
		sum += x
		sumSq += x * x
	}
	if sumSq == 0 {
		return 0
	}
	return (sum * sum) / (float64(len(xs)) * sumSq)
}

// ServerSummary is the per-server slice of a run report.
type ServerSummary struct {
	Name          string
	Bandwidth     float64
	AvgLatency    float64
	AvgTime       float64
	TotalRequests int
}

// SummarizeServer snapshots a server's reducers after a run.
func SummarizeServer(s *Server) ServerSummary {
	return ServerSummary{
		Name:          s.Name(),
		Bandwidth:     s.Bandwidth(),
		AvgLatency:    s.AvgLatency(),
		AvgTime:       s.AvgTime(),
		TotalRequests: s.TotalRequests(),
	}
}

// Distribution captures a statistical summary of a metric.
type Distribution struct {
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
	Min   float64
	Max   float64
	Count int
}

// NewDistribution computes a Distribution from raw values.
// Returns the zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return Distribution{
		Mean:  sum / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		P99:   percentile(sorted, 99),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// percentile computes the p-th percentile using linear interpolation.
// Input must be sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
