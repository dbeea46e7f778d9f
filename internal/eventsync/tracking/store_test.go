package tracking_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

func makeRecords(n int) []tracking.FrameRecord {
	out := make([]tracking.FrameRecord, n)
	for i := 0; i < n; i++ {
		out[i] = tracking.FrameRecord{
			Frame: i,
			Players: []tracking.PlayerFrame{
				{PlayerID: 1, X: float64(i), Y: 0, Detected: true},
			},
			Ball: tracking.BallFrame{X: float64(i) + 1, Y: 0, Z: 0, Known: true},
		}
	}
	return out
}

func TestNewStoreRejectsNonContiguousFrames(t *testing.T) {
	t.Parallel()
	records := []tracking.FrameRecord{{Frame: 0}, {Frame: 2}}
	_, err := tracking.NewStore(records, []tracking.PlayerMeta{{ID: 1, TeamID: 1, Active: true}})
	require.ErrorIs(t, err, tracking.ErrNonMonotonicFrame)
}

func TestNewStoreSkipsInactivePlayers(t *testing.T) {
	t.Parallel()
	records := makeRecords(5)
	players := []tracking.PlayerMeta{
		{ID: 1, TeamID: 10, Active: true},
		{ID: 2, TeamID: 10, Active: false},
	}
	s, err := tracking.NewStore(records, players)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NumPlayers())

	_, ok := s.PlayerIndex(2)
	assert.False(t, ok)
	idx, ok := s.PlayerIndex(1)
	assert.True(t, ok)
	assert.Equal(t, []int{idx}, s.TeamIndices(10))
}

func TestStorePositionAndDetected(t *testing.T) {
	t.Parallel()
	records := makeRecords(3)
	s, err := tracking.NewStore(records, []tracking.PlayerMeta{{ID: 1, TeamID: 1, Active: true}})
	require.NoError(t, err)

	idx, _ := s.PlayerIndex(1)
	x, y, ok := s.Position(2, idx)
	require.True(t, ok)
	assert.Equal(t, float32(2), x)
	assert.Equal(t, float32(0), y)
	assert.True(t, s.Detected(2, idx))
}

func TestStoreDistPlyBall(t *testing.T) {
	t.Parallel()
	records := makeRecords(1)
	s, err := tracking.NewStore(records, []tracking.PlayerMeta{{ID: 1, TeamID: 1, Active: true}})
	require.NoError(t, err)

	idx, _ := s.PlayerIndex(1)
	dist := s.DistPlyBall(0, idx)
	assert.InDelta(t, 1.0, dist, 1e-6)
}

func TestPeriodBounds(t *testing.T) {
	t.Parallel()
	p1, p2 := 1, 2
	records := []tracking.FrameRecord{
		{Frame: 0, Period: &p1},
		{Frame: 1, Period: &p1},
		{Frame: 2, Period: &p2},
	}
	s, err := tracking.NewStore(records, nil)
	require.NoError(t, err)

	start, end, ok := s.PeriodBounds(1)
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)

	_, _, ok = s.PeriodBounds(99)
	assert.False(t, ok)
}

func TestPlayerKinematicsMasksImpossibleSpeed(t *testing.T) {
	t.Parallel()
	// A player teleporting 1000m between consecutive frames is an
	// impossible speed and must be masked to NaN.
	n := 20
	records := make([]tracking.FrameRecord, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		if i >= n/2 {
			x = float64(i) * 1000
		}
		records[i] = tracking.FrameRecord{
			Frame:   i,
			Players: []tracking.PlayerFrame{{PlayerID: 1, X: x, Y: 0, Detected: true}},
			Ball:    tracking.BallFrame{Known: true},
		}
	}
	s, err := tracking.NewStore(records, []tracking.PlayerMeta{{ID: 1, TeamID: 1, Active: true}})
	require.NoError(t, err)

	idx, _ := s.PlayerIndex(1)
	speed, _, _, _ := s.PlayerKinematics(n/2+1, idx)
	assert.True(t, math.IsNaN(float64(speed)))
}
