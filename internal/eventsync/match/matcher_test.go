package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillcorner/event-sync/internal/eventsync/match"
	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

func buildStore(t *testing.T) *tracking.Store {
	t.Helper()
	records := []tracking.FrameRecord{
		{Frame: 0, Players: []tracking.PlayerFrame{{PlayerID: 1, X: 0, Y: 0, Detected: true}}, Ball: tracking.BallFrame{X: 0, Y: 0, Known: true}},
		{Frame: 1, Players: []tracking.PlayerFrame{{PlayerID: 1, X: 0, Y: 0, Detected: false}}, Ball: tracking.BallFrame{X: 50, Y: 0, Known: true}},
		{Frame: 2, Players: []tracking.PlayerFrame{{PlayerID: 1, X: 0, Y: 0, Detected: true}}, Ball: tracking.BallFrame{X: 0, Y: 0, Known: true}},
	}
	s, err := tracking.NewStore(records, []tracking.PlayerMeta{{ID: 1, TeamID: 1, Active: true}})
	require.NoError(t, err)
	return s
}

func TestMatcherFlagsKnownPlayerNearBall(t *testing.T) {
	t.Parallel()
	store := buildStore(t)
	playerID := 1
	provPlayerID := 77
	e := &model.Event{PlayerID: &playerID, ProviderPlayerID: &provPlayerID, SkcFrame: 0}

	m := match.New(store, []*model.Event{e}, match.Config{ThIsMatched: 3.5, Offset: 0, NanDist: 100.0})
	m.Run()

	assert.True(t, e.IsMatched)
	assert.True(t, e.IsPlayerDetected)
	assert.True(t, e.HasProviderPlayerID)
	assert.True(t, e.FrameTrackingDataAvailable)
}

func TestMatcherFlagsUnknownPlayer(t *testing.T) {
	t.Parallel()
	store := buildStore(t)
	unknownPlayer := 999
	e := &model.Event{PlayerID: &unknownPlayer, SkcFrame: 0}

	m := match.New(store, []*model.Event{e}, match.DefaultConfig())
	m.Run()

	assert.False(t, e.IsMatched)
	assert.False(t, e.IsPlayerDetected)
	assert.False(t, e.HasProviderPlayerID)
	assert.True(t, e.FrameTrackingDataAvailable)
}

func TestMatcherNotMatchedWhenBallFar(t *testing.T) {
	t.Parallel()
	store := buildStore(t)
	playerID := 1
	e := &model.Event{PlayerID: &playerID, SkcFrame: 1}

	m := match.New(store, []*model.Event{e}, match.Config{ThIsMatched: 3.5, Offset: 0, NanDist: 100.0})
	m.Run()

	assert.False(t, e.IsMatched)
	assert.False(t, e.IsPlayerDetected)
}

func TestMatcherFrameOutOfRange(t *testing.T) {
	t.Parallel()
	store := buildStore(t)
	playerID := 1
	e := &model.Event{PlayerID: &playerID, SkcFrame: 999}

	m := match.New(store, []*model.Event{e}, match.DefaultConfig())
	m.Run()

	assert.False(t, e.FrameTrackingDataAvailable)
	assert.False(t, e.IsPlayerDetected)
}
