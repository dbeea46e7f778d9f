package reportstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillcorner/event-sync/internal/eventsync/report"
	"github.com/skillcorner/event-sync/internal/eventsync/reportstore"
)

func openTestStore(t *testing.T) *reportstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sync.db")
	s, err := reportstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() report.Report {
	playerID, teamID := 1, 10
	return report.Report{
		Events: []report.EventInfo{
			{
				EventID: "e1", EventTypeName: "pass", Period: 1, Frame: 100,
				PlayerID: &playerID, TeamID: &teamID,
				IsMatched: true, IsPlayerDetected: true, IsMatchedApplicable: true,
			},
			{
				EventID: "e2", EventTypeName: "shot", Period: 1, Frame: 200,
				IsMatched: false, IsMatchedApplicable: true,
			},
		},
		ByEventType: []report.EventTypeAggregate{
			{EventTypeName: "pass", NbEvents: 1, IsMatched: 1, PctIsMatched: 100, IsMatchedApplicable: true},
			{EventTypeName: "shot", NbEvents: 1, IsMatched: 0, PctIsMatched: 0, IsMatchedApplicable: true},
		},
	}
}

func TestSaveRunAndFetchAggregate(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	runID, err := store.SaveRun("match-1", "opta", 1000, 2000, sampleReport())
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	agg, err := store.EventTypeAggregate(runID)
	require.NoError(t, err)
	require.Len(t, agg, 2)
	assert.Equal(t, "pass", agg[0].EventTypeName)
	assert.InDelta(t, 100, agg[0].PctIsMatched, 1e-9)
	assert.True(t, agg[0].IsMatchedApplicable)
	assert.Equal(t, "shot", agg[1].EventTypeName)
}

func TestEventTypeAggregateUnknownRunIsEmpty(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	agg, err := store.EventTypeAggregate("does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, agg)
}

func TestSaveRunGeneratesDistinctRunIDs(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	id1, err := store.SaveRun("match-1", "opta", 1, 2, sampleReport())
	require.NoError(t, err)
	id2, err := store.SaveRun("match-1", "opta", 3, 4, sampleReport())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}
