// Package refine moves an event's SkcFrame from its provisionally-stamped
// frame to the frame of real ball contact, by searching a small window
// around it for the ball-acceleration peak while the event's player is
// within reach of the ball.
package refine

import "math"

// Config holds the thresholds the refinement search is calibrated against.
type Config struct {
	// DistBallTH is the maximum player-ball distance, in meters, considered
	// "in reach" for refinement purposes.
	DistBallTH float64
	// IsDetectedTH is the minimum fraction of the search window the event's
	// player must be detected in for refinement to proceed.
	IsDetectedTH float64
	// BallAccTH is the minimum ball acceleration, in m/s^2, a candidate
	// contact frame must reach.
	BallAccTH float64
	// LocalOffsetFramePast bounds how many frames before the last
	// in-reach frame the acceleration-peak search is allowed to look.
	LocalOffsetFramePast int
}

// DefaultConfig returns the thresholds the reference implementation uses.
func DefaultConfig() Config {
	return Config{
		DistBallTH:           3.0,
		IsDetectedTH:         0.5,
		BallAccTH:            7.0,
		LocalOffsetFramePast: 5,
	}
}

func isNaN32(v float32) bool { return v != v }

// refineIndexInWindow finds the ball-acceleration peak within
// LocalOffsetFramePast frames before the last finite sample of acc, and
// reports ok=false if that peak doesn't clear BallAccTH.
func refineIndexInWindow(acc []float32, th float64, lookback int) (idx int, ok bool) {
	lastIdx := -1
	for i, v := range acc {
		if !isNaN32(v) {
			lastIdx = i
		}
	}
	if lastIdx < 0 {
		return 0, false
	}
	lo := lastIdx - lookback
	if lo < 0 {
		lo = 0
	}
	best := -1
	bestVal := float32(math.Inf(-1))
	for i := lo; i <= lastIdx; i++ {
		v := acc[i]
		if isNaN32(v) {
			continue
		}
		if v > bestVal {
			bestVal = v
			best = i
		}
	}
	if best == -1 || float64(bestVal) < th {
		return 0, false
	}
	return best, true
}
