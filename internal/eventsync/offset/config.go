// Package offset infers, per match period, the integer frame offset that
// aligns a provider's event-stream clock with the tracking stream's frame
// index: a coarse FFT cross-correlation estimate followed by a fine
// least-mean-deviation refinement over matched passes.
package offset

// Config holds the per-period constants the synchronizer is calibrated
// against. These are dataset-specific defaults, not universal physical
// constants, so callers may override them (see syncconfig).
type Config struct {
	// DefaultStart is the fallback period-start frame used when a period has
	// too few qualifying passes to estimate an offset, keyed by period number.
	DefaultStart map[int]int
	// MinPassPerPeriod is the minimum pass count a player must have in a
	// period, strictly exceeded, before their passes contribute to the
	// coarse estimate.
	MinPassPerPeriod map[int]int
	// ThDistPlyBall is the distance, in meters, under which a player is
	// considered in possession of the ball.
	ThDistPlyBall float64
	// SearchOffset is the half-width, in frames, of both the matched-pass
	// search window and the fine-refinement candidate range.
	SearchOffset int
}

// DefaultConfig returns the constants the reference implementation ships
// with.
func DefaultConfig() Config {
	return Config{
		DefaultStart:     map[int]int{1: 0, 2: 27000, 3: 54000, 4: 63000},
		MinPassPerPeriod: map[int]int{1: 10, 2: 10, 3: 5, 4: 5},
		ThDistPlyBall:    2.5,
		SearchOffset:     25,
	}
}
