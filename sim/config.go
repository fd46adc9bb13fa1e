package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExperimentSpec is the top-level experiment configuration.
// Loaded from YAML via LoadExperimentSpec(path); decoding is strict, so an
// unrecognized field is an error rather than a silent no-op.
type ExperimentSpec struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Seed        uint64       `yaml:"seed"`
	Servers     []ServerSpec `yaml:"servers"`
	Requests    RequestsSpec `yaml:"requests"`
	Policies    []string     `yaml:"policies"`
}

// ServerSpec declares one server's identity.
type ServerSpec struct {
	Name      string  `yaml:"name"`
	Bandwidth float64 `yaml:"bandwidth"` // bytes per second, must be > 0
}

// RequestsSpec declares the request workload: how many and how sized.
type RequestsSpec struct {
	Count        int      `yaml:"count"`
	Distribution DistSpec `yaml:"distribution"`
}

// DistSpec parameterizes a request-size distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// DefaultSpec returns the canonical comparison experiment: four servers with
// staggered bandwidths, a thousand uniform request sizes in [500, 1000), and
// all four policies.
func DefaultSpec() *ExperimentSpec {
	return &ExperimentSpec{
		Title:       "Load balancing policy comparison",
		Description: "Compares per-policy latency, throughput and fairness over a fixed server pool.",
		Seed:        42,
		Servers: []ServerSpec{
			{Name: "Server1", Bandwidth: 1000},
			{Name: "Server2", Bandwidth: 800},
			{Name: "Server3", Bandwidth: 900},
			{Name: "Server4", Bandwidth: 700},
		},
		Requests: RequestsSpec{
			Count: 1000,
			Distribution: DistSpec{
				Type:   "uniform",
				Params: map[string]float64{"min": 500, "max": 1000},
			},
		},
		Policies: AvailablePolicies(),
	}
}

// LoadExperimentSpec reads and strictly parses a YAML experiment file.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var spec ExperimentSpec
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the spec for configuration errors: an empty pool, a
// non-positive bandwidth, duplicate or empty server names, a non-positive
// request count, and unknown policy names. Unknown policies are rejected here
// so a bad name fails before any run starts rather than mid-experiment.
func (spec *ExperimentSpec) Validate() error {
	if len(spec.Servers) == 0 {
		return fmt.Errorf("experiment spec: %w", ErrEmptyServerPool)
	}
	seen := make(map[string]bool, len(spec.Servers))
	for i, s := range spec.Servers {
		if s.Name == "" {
			return fmt.Errorf("server %d: name must not be empty", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("server %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		if s.Bandwidth <= 0 {
			return fmt.Errorf("server %q: bandwidth must be positive, got %f", s.Name, s.Bandwidth)
		}
	}
	if spec.Requests.Count <= 0 {
		return fmt.Errorf("requests.count must be positive, got %d", spec.Requests.Count)
	}
	if len(spec.Policies) == 0 {
		return fmt.Errorf("at least one policy is required")
	}
	for _, name := range spec.Policies {
		if !ValidPolicyNames[name] {
			return fmt.Errorf("%w: %q (available: %v)", ErrUnknownPolicy, name, AvailablePolicies())
		}
	}
	// The sampler factory re-validates parameters; constructing one here
	// catches malformed distributions at load time.
	if _, err := NewSizeSampler(spec.Requests.Distribution, spec.Seed); err != nil {
		return fmt.Errorf("requests.distribution: %w", err)
	}
	return nil
}
