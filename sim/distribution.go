package sim

import "fmt"

// DurationSampler draws hold or inter-arrival durations in minutes from a RandomStream.
type DurationSampler interface {
	// Sample returns a non-negative duration.
	Sample(rs *RandomStream) float64
	// Mean returns the expected value of the distribution.
	Mean() float64
}

// ExponentialSampler produces exponentially-distributed durations.
// Used for identity-check holds and passenger inter-arrival times.
type ExponentialSampler struct {
	mean   float64
	lambda float64 // 1/mean, kept so every draw divides by the same rounded rate
}

// NewExponentialSampler creates an ExponentialSampler with the given mean.
// Panics if mean is not positive; configuration validation rejects that earlier.
func NewExponentialSampler(mean float64) *ExponentialSampler {
	if !(mean > 0) {
		panic(fmt.Sprintf("NewExponentialSampler: mean must be > 0, got %v", mean))
	}
	return &ExponentialSampler{mean: mean, lambda: 1.0 / mean}
}

func (s *ExponentialSampler) Sample(rs *RandomStream) float64 {
	return rs.Exponential(s.lambda)
}

func (s *ExponentialSampler) Mean() float64 { return s.mean }

// UniformSampler produces durations uniformly distributed over [min, max].
// Used for personal-scanner holds.
type UniformSampler struct {
	min, max float64
}

// NewUniformSampler creates a UniformSampler over [min, max].
// Panics if the bounds are negative or inverted.
func NewUniformSampler(min, max float64) *UniformSampler {
	if min < 0 || max < min {
		panic(fmt.Sprintf("NewUniformSampler: invalid bounds [%v, %v]", min, max))
	}
	return &UniformSampler{min: min, max: max}
}

func (s *UniformSampler) Sample(rs *RandomStream) float64 {
	return rs.Uniform(s.min, s.max)
}

func (s *UniformSampler) Mean() float64 { return (s.min + s.max) / 2 }
