package wyscout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericTypeDetectsPotentialPassInterception(t *testing.T) {
	t.Parallel()
	re := RawEvent{PrimaryType: "interception", SecondaryTypes: []string{"pass"}}
	assert.Equal(t, "pass", string(genericType(re)))

	re2 := RawEvent{PrimaryType: "interception", SecondaryTypes: []string{"loose_ball"}}
	assert.Equal(t, "generic", string(genericType(re2)))
}

func TestGenericTypeShot(t *testing.T) {
	t.Parallel()
	re := RawEvent{PrimaryType: "shot"}
	assert.Equal(t, "shot", string(genericType(re)))
}

func TestIsFirstTouchPrimaryOnly(t *testing.T) {
	t.Parallel()
	assert.True(t, isFirstTouch(RawEvent{PrimaryType: "clearance"}))
	assert.False(t, isFirstTouch(RawEvent{PrimaryType: "pass"}))
}

func TestIsFirstTouchPrimaryAndSecondary(t *testing.T) {
	t.Parallel()
	assert.True(t, isFirstTouch(RawEvent{PrimaryType: "duel", SecondaryTypes: []string{"sliding_tackle"}}))
	assert.False(t, isFirstTouch(RawEvent{PrimaryType: "duel", SecondaryTypes: []string{"aerial"}}))
}

func TestParseClockSeconds(t *testing.T) {
	t.Parallel()
	sec, ok := parseClockSeconds("01:02:03.500")
	assert.True(t, ok)
	assert.InDelta(t, 3723.5, sec, 1e-9)

	_, ok = parseClockSeconds("bad")
	assert.False(t, ok)
}

func TestOffsetsByPeriodUsesEarliestVideoTimestampPerPeriod(t *testing.T) {
	t.Parallel()
	events := []RawEvent{
		{ID: "a", MatchPeriod: "1H", MatchTimestamp: "00:00:05.000", VideoTimestamp: "10"},
		{ID: "b", MatchPeriod: "1H", MatchTimestamp: "00:00:10.000", VideoTimestamp: "5"},
	}
	offsets, useMatchTimestamp := offsetsByPeriod(events)
	assert.True(t, useMatchTimestamp)
	assert.InDelta(t, 10.0, offsets[1], 1e-9)
}
