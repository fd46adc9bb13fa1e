// Request-size generation. Samplers wrap gonum's distuv distributions over a
// seeded source so the same spec always yields the same request sequence.

package sim

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SizeSampler generates request payload sizes in bytes.
type SizeSampler interface {
	// Sample returns a positive size in bytes.
	Sample() float64
}

// UniformSizes draws sizes uniformly from [min, max).
type UniformSizes struct {
	dist distuv.Uniform
}

// NewUniformSizes creates a uniform sampler over [min, max) with its own
// seeded source.
func NewUniformSizes(min, max float64, seed uint64) *UniformSizes {
	return &UniformSizes{dist: distuv.Uniform{Min: min, Max: max, Src: rand.NewSource(seed)}}
}

func (u *UniformSizes) Sample() float64 {
	return u.dist.Rand()
}

// GaussianSizes draws sizes from a normal distribution clamped to [min, max].
// The clamp keeps extreme draws from producing non-positive sizes, which a
// server would reject.
type GaussianSizes struct {
	dist     distuv.Normal
	min, max float64
}

// NewGaussianSizes creates a clamped Gaussian sampler with its own seeded
// source. min must be positive.
func NewGaussianSizes(mean, stdDev, min, max float64, seed uint64) *GaussianSizes {
	return &GaussianSizes{
		dist: distuv.Normal{Mu: mean, Sigma: stdDev, Src: rand.NewSource(seed)},
		min:  min,
		max:  max,
	}
}

func (g *GaussianSizes) Sample() float64 {
	v := g.dist.Rand()
	if v < g.min {
		return g.min
	}
	if v > g.max {
		return g.max
	}
	return v
}

// ConstantSizes always returns the same size.
type ConstantSizes struct {
	value float64
}

// NewConstantSizes creates a sampler that always yields value.
func NewConstantSizes(value float64) *ConstantSizes {
	return &ConstantSizes{value: value}
}

func (c *ConstantSizes) Sample() float64 {
	return c.value
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewSizeSampler creates a SizeSampler from a DistSpec and seed.
func NewSizeSampler(spec DistSpec, seed uint64) (SizeSampler, error) {
	switch spec.Type {
	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		min, max := spec.Params["min"], spec.Params["max"]
		if min <= 0 || max <= min {
			return nil, fmt.Errorf("uniform distribution requires 0 < min < max, got min=%f max=%f", min, max)
		}
		return NewUniformSizes(min, max, seed), nil

	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		min, max := spec.Params["min"], spec.Params["max"]
		if min <= 0 || max < min {
			return nil, fmt.Errorf("gaussian distribution requires 0 < min <= max, got min=%f max=%f", min, max)
		}
		return NewGaussianSizes(spec.Params["mean"], spec.Params["std_dev"], min, max, seed), nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		if spec.Params["value"] <= 0 {
			return nil, fmt.Errorf("constant distribution requires a positive value, got %f", spec.Params["value"])
		}
		return NewConstantSizes(spec.Params["value"]), nil

	default:
		return nil, fmt.Errorf("unknown size distribution type %q", spec.Type)
	}
}

// GenerateSizes draws n sizes from the sampler.
func GenerateSizes(sampler SizeSampler, n int) []float64 {
	sizes := make([]float64, n)
	for i := range sizes {
		sizes[i] = sampler.Sample()
	}
	return sizes
}
