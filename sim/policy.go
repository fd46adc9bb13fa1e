package sim

import (
	"fmt"
	"math"
)

// Policy decides which server receives the next request.
// Implementations must not mutate server state — mutation is the server's
// own responsibility once it receives the request. Select is called by a
// single dispatcher goroutine, so policies carrying a counter do not need
// their own locking; they do need exclusive ownership per run, which
// NewPolicy provides by constructing a fresh instance for every run.
type Policy interface {
	// Name returns the registered policy name.
	Name() string
	// Select returns the server that should handle the next request.
	// Returns ErrEmptyServerPool if the pool is empty.
	Select(pool []*Server) (*Server, error)
}

// ValidPolicyNames is the set of recognized policy names.
// Shared by config validation and NewPolicy to avoid duplication.
var ValidPolicyNames = map[string]bool{
	"round-robin":          true,
	"weighted-round-robin": true,
	"least-connections":    true,
	"latency-optimized":    true,
}

// AvailablePolicies returns the supported policy names in canonical order.
func AvailablePolicies() []string {
	return []string{"round-robin", "weighted-round-robin", "least-connections", "latency-optimized"}
}

// NewPolicy creates a policy instance by name. The pool is needed at
// construction time only by weighted-round-robin, which precompiles its
// selection sequence from server bandwidths.
func NewPolicy(name string, pool []*Server) (Policy, error) {
	switch name {
	case "round-robin":
		return &RoundRobin{}, nil
	case "weighted-round-robin":
		return NewWeightedRoundRobin(pool)
	case "least-connections":
		return &LeastConnections{}, nil
	case "latency-optimized":
		return &LatencyOptimized{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// RoundRobin selects servers in strict rotation, ignoring load entirely.
// Deterministic: request k always goes to pool[(k-1) mod len(pool)].
type RoundRobin struct {
	counter int
}

// Name implements Policy for RoundRobin.
func (rr *RoundRobin) Name() string { return "round-robin" }

// Select implements Policy for RoundRobin.
func (rr *RoundRobin) Select(pool []*Server) (*Server, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("round-robin: %w", ErrEmptyServerPool)
	}
	target := pool[rr.counter%len(pool)]
	rr.counter++
	return target, nil
}

// WeightedRoundRobin cycles through a precompiled selection sequence in which
// each server index appears int(bandwidth) times. Truncation is deliberate: a
// server whose bandwidth truncates to zero contributes no slots and is
// starved. That quirk is part of the algorithm's contract, not a defect to
// silently fix.
type WeightedRoundRobin struct {
	sequence []int // flattened server indices, one entry per weight unit
	counter  int
}

// NewWeightedRoundRobin builds the selection sequence from the pool's
// bandwidths. Fails if the pool is empty or every bandwidth truncates to
// zero weight, since the policy could then never select anything.
func NewWeightedRoundRobin(pool []*Server) (*WeightedRoundRobin, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("weighted-round-robin: %w", ErrEmptyServerPool)
	}
	var sequence []int
	for i, s := range pool {
		weight := int(s.Bandwidth())
		for j := 0; j < weight; j++ {
			sequence = append(sequence, i)
		}
	}
	if len(sequence) == 0 {
		return nil, fmt.Errorf("weighted-round-robin: every server bandwidth truncates to zero weight")
	}
	return &WeightedRoundRobin{sequence: sequence}, nil
}

// Name implements Policy for WeightedRoundRobin.
func (w *WeightedRoundRobin) Name() string { return "weighted-round-robin" }

// Select implements Policy for WeightedRoundRobin.
func (w *WeightedRoundRobin) Select(pool []*Server) (*Server, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("weighted-round-robin: %w", ErrEmptyServerPool)
	}
	target := pool[w.sequence[w.counter%len(w.sequence)]]
	w.counter++
	return target, nil
}

// LeastConnections selects the server with the fewest pending requests.
// Ties are broken by first occurrence in pool order (lowest index). Queue
// lengths are read under each server's own lock but may be stale by the time
// the request is enqueued; the policy is a heuristic and tolerates that.
type LeastConnections struct{}

// Name implements Policy for LeastConnections.
func (lc *LeastConnections) Name() string { return "least-connections" }

// Select implements Policy for LeastConnections.
func (lc *LeastConnections) Select(pool []*Server) (*Server, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("least-connections: %w", ErrEmptyServerPool)
	}
	target := pool[0]
	minLen := target.QueueLen()
	for _, s := range pool[1:] {
		if l := s.QueueLen(); l < minLen {
			minLen = l
			target = s
		}
	}
	return target, nil
}

// LatencyOptimized selects the server with the lowest estimated latency
// (pending bytes / bandwidth), so a fast server with a short backlog beats a
// slow idle one when the backlog clears quickly. Same tie-break and staleness
// rules as LeastConnections.
type LatencyOptimized struct{}

// Name implements Policy for LatencyOptimized.
func (lo *LatencyOptimized) Name() string { return "latency-optimized" }

// Select implements Policy for LatencyOptimized.
func (lo *LatencyOptimized) Select(pool []*Server) (*Server, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("latency-optimized: %w", ErrEmptyServerPool)
	}
	var target *Server
	minEst := math.Inf(1)
	for _, s := range pool {
		if est := s.EstimateLatency(); est < minEst {
			minEst = est
			target = s
		}
	}
	return target, nil
}
