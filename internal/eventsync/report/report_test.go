package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillcorner/event-sync/internal/eventsync/attackside"
	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/report"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

func testRoster() report.Roster {
	return report.Roster{
		Players: map[int]report.PlayerInfo{
			1: {ID: 1, TeamID: 10, ShortName: "J. Doe", RoleAcronym: "CM", Number: 8, Starting: true},
		},
		Teams: map[int]report.TeamInfo{
			10: {ID: 10, Name: "Home FC", Type: "home_team"},
		},
	}
}

func buildStore(t *testing.T, nbFrames int) *tracking.Store {
	t.Helper()
	records := make([]tracking.FrameRecord, nbFrames)
	for i := 0; i < nbFrames; i++ {
		records[i] = tracking.FrameRecord{Frame: i}
	}
	s, err := tracking.NewStore(records, nil)
	require.NoError(t, err)
	return s
}

func TestEventInfoEnrichesFromRoster(t *testing.T) {
	t.Parallel()
	store := buildStore(t, 10)
	a := report.New(store, testRoster(), nil)

	playerID, teamID := 1, 10
	e := &model.Event{ID: "e1", EventTypeName: "pass", PlayerID: &playerID, TeamID: &teamID, SkcFrame: 5, IsMatched: true}

	info := a.EventInfo(e)
	assert.Equal(t, "J. Doe", info.PlayerName)
	assert.Equal(t, "CM", info.PlayerRole)
	assert.Equal(t, 8, info.PlayerNumber)
	assert.True(t, info.Starting)
	assert.Equal(t, "Home FC", info.TeamName)
	assert.Equal(t, "home_team", info.TeamType)
	assert.Equal(t, 5, info.Frame)
}

func TestEventInfoMissingRosterEntryLeavesFieldsBlank(t *testing.T) {
	t.Parallel()
	store := buildStore(t, 10)
	a := report.New(store, testRoster(), nil)

	unknownPlayer := 999
	e := &model.Event{ID: "e2", PlayerID: &unknownPlayer}
	info := a.EventInfo(e)
	assert.Empty(t, info.PlayerName)
	assert.Equal(t, 0, info.PlayerNumber)
}

func TestAggregateGroupsByEventTypeAndComputesPct(t *testing.T) {
	t.Parallel()
	rows := []report.EventInfo{
		{EventTypeName: "pass", IsMatched: true, IsMatchedApplicable: true},
		{EventTypeName: "pass", IsMatched: false, IsMatchedApplicable: true},
		{EventTypeName: "shot", IsMatched: true, IsMatchedApplicable: false},
	}
	agg := report.Aggregate(rows)
	require.Len(t, agg, 2)

	assert.Equal(t, "pass", agg[0].EventTypeName)
	assert.Equal(t, 2, agg[0].NbEvents)
	assert.Equal(t, 1, agg[0].IsMatched)
	assert.InDelta(t, 50.0, agg[0].PctIsMatched, 1e-9)
	assert.True(t, agg[0].IsMatchedApplicable)

	assert.Equal(t, "shot", agg[1].EventTypeName)
	assert.Equal(t, 1, agg[1].NbEvents)
	assert.False(t, agg[1].IsMatchedApplicable)
}

func TestAggregateIsMatchedApplicableIsOrAcrossGroup(t *testing.T) {
	t.Parallel()
	rows := []report.EventInfo{
		{EventTypeName: "pass", IsMatchedApplicable: false},
		{EventTypeName: "pass", IsMatchedApplicable: true},
		{EventTypeName: "pass", IsMatchedApplicable: false},
	}
	agg := report.Aggregate(rows)
	require.Len(t, agg, 1)
	assert.True(t, agg[0].IsMatchedApplicable)
}

func TestFreezeFrameOutOfRangeFrame(t *testing.T) {
	t.Parallel()
	store := buildStore(t, 5)
	a := report.New(store, testRoster(), nil)

	e := &model.Event{ID: "e1", SkcFrame: 999}
	_, ok := a.FreezeFrame(e)
	assert.False(t, ok)
}

func TestFreezeFrameProjectsLocationWithResolver(t *testing.T) {
	t.Parallel()
	store := buildStore(t, 5)
	teamID := 10
	resolver := attackside.FromMatchCatalogue(10, 20, []attackside.Side{attackside.LeftToRight})
	a := report.New(store, testRoster(), resolver)

	e := &model.Event{ID: "e1", TeamID: &teamID, Period: 1, SkcFrame: 2, Location: model.At(3, -4)}
	ff, ok := a.FreezeFrame(e)
	require.True(t, ok)
	require.NotNil(t, ff.ProjectedEventX)
	require.NotNil(t, ff.ProjectedEventY)
	assert.Equal(t, 3.0, *ff.ProjectedEventX)
	assert.Equal(t, -4.0, *ff.ProjectedEventY)
}

func TestAssembleBundlesAllThreeOutputs(t *testing.T) {
	t.Parallel()
	store := buildStore(t, 5)
	a := report.New(store, testRoster(), nil)

	playerID := 1
	events := []*model.Event{
		{ID: "e1", EventTypeName: "pass", PlayerID: &playerID, SkcFrame: 0},
		{ID: "e2", EventTypeName: "shot", SkcFrame: 1},
	}
	rep := a.Assemble(events)
	assert.Len(t, rep.Events, 2)
	assert.Len(t, rep.ByEventType, 2)
	assert.Len(t, rep.FreezeFrames, 2)
}
