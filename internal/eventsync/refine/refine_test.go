package refine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefineIndexInWindowPicksPeak(t *testing.T) {
	t.Parallel()
	nan := float32(math.NaN())
	acc := []float32{nan, 1, 3, 9, 4, nan}
	idx, ok := refineIndexInWindow(acc, 5.0, 10)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestRefineIndexInWindowBelowThreshold(t *testing.T) {
	t.Parallel()
	acc := []float32{1, 2, 3}
	_, ok := refineIndexInWindow(acc, 10.0, 10)
	assert.False(t, ok)
}

func TestRefineIndexInWindowAllNaN(t *testing.T) {
	t.Parallel()
	nan := float32(math.NaN())
	acc := []float32{nan, nan, nan}
	_, ok := refineIndexInWindow(acc, 0, 10)
	assert.False(t, ok)
}

func TestRefineIndexInWindowRespectsLookback(t *testing.T) {
	t.Parallel()
	// The peak at index 0 is outside the lookback window from the last
	// finite sample at index 5, so it must not be picked.
	acc := []float32{100, 1, 1, 1, 1, 2}
	idx, ok := refineIndexInWindow(acc, 0, 2)
	assert.True(t, ok)
	assert.Equal(t, 5, idx)
}
