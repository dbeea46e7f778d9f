package statsbomb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveLineupOldFormatPassesThrough(t *testing.T) {
	t.Parallel()
	entries := []LineupEntry{
		{PlayerID: 1, HasPositions: false},
		{PlayerID: 2, HasPositions: false},
	}
	got := ActiveLineup(entries)
	assert.Len(t, got, 2)
}

func TestActiveLineupNewFormatFiltersUnused(t *testing.T) {
	t.Parallel()
	entries := []LineupEntry{
		{PlayerID: 1, HasPositions: true, PositionCount: 3},
		{PlayerID: 2, HasPositions: true, PositionCount: 0},
	}
	got := ActiveLineup(entries)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, got[0].PlayerID)
}

func TestTeamIDMapping(t *testing.T) {
	t.Parallel()
	mapping, ok := TeamIDMapping(10, 20, 100, 100, 200)
	assert.True(t, ok)
	assert.Equal(t, 100, mapping[10])
	assert.Equal(t, 200, mapping[20])

	mapping, ok = TeamIDMapping(10, 20, 200, 100, 200)
	assert.True(t, ok)
	assert.Equal(t, 200, mapping[10])
	assert.Equal(t, 100, mapping[20])

	_, ok = TeamIDMapping(10, 20, 999, 100, 200)
	assert.False(t, ok)
}

func TestTimestampSecondsParsesIgnoringHour(t *testing.T) {
	t.Parallel()
	sec, ok := timestampSeconds("00:05:30.500")
	assert.True(t, ok)
	assert.InDelta(t, 330.5, sec, 1e-9)

	_, ok = timestampSeconds("invalid")
	assert.False(t, ok)
}

func TestGenericType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "pass", string(genericType(passTypeID)))
	assert.Equal(t, "shot", string(genericType(shotTypeID)))
	assert.Equal(t, "generic", string(genericType(999)))
}
