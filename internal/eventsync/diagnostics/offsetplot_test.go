package diagnostics_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillcorner/event-sync/internal/eventsync/diagnostics"
)

func TestPlotOffsetCurvesWritesOnePNGPerPeriod(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	curves := []diagnostics.OffsetCurve{
		{Period: 1, CandidateFrom: -5, Curve: []float64{0, 1, 4, 9, 4, 1, 0, 0, 0, 0, 0}, ChosenOffset: -2},
		{Period: 2, CandidateFrom: -5, Curve: []float64{0, 1, 4, 9, 4, 1, 0, 0, 0, 0, 0}, ChosenOffset: 0},
	}

	paths, err := diagnostics.PlotOffsetCurves(dir, curves)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for i, p := range paths {
		period := i + 1
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("period_%02d_offset.png", period)), p)
		info, statErr := os.Stat(p)
		require.NoError(t, statErr)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestPlotOffsetCurvesEmptyInput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths, err := diagnostics.PlotOffsetCurves(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
