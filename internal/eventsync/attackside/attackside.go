// Package attackside resolves which way each team is attacking in each
// period, so the output assembler can project event coordinates onto a
// single consistent pitch orientation.
package attackside

import (
	"math"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

// Side is a team's attacking direction within a period.
type Side string

const (
	LeftToRight Side = "left_to_right"
	RightToLeft Side = "right_to_left"
	// unknown is the zero value: no side could be resolved.
	unknown Side = ""
)

var opposite = map[Side]Side{LeftToRight: RightToLeft, RightToLeft: LeftToRight}

// Resolver maps (period, team) to attacking side and projects event
// coordinates accordingly.
type Resolver struct {
	sideByPeriod map[int]map[int]Side
}

// FromMatchCatalogue builds a Resolver from the match catalogue's declared
// per-period home-team side, the authoritative source when present.
func FromMatchCatalogue(homeTeamID, awayTeamID int, homeSideByPeriod []Side) *Resolver {
	m := make(map[int]map[int]Side, len(homeSideByPeriod))
	for i, side := range homeSideByPeriod {
		period := i + 1
		m[period] = map[int]Side{homeTeamID: side, awayTeamID: opposite[side]}
	}
	return &Resolver{sideByPeriod: m}
}

// FromTracking derives each period's attacking side from the mean x
// position of each team's players over that period, used when the match
// catalogue doesn't declare home_team_side.
func FromTracking(store *tracking.Store, homeTeamID, awayTeamID int, periods []int) *Resolver {
	m := make(map[int]map[int]Side, len(periods))
	for _, period := range periods {
		start, end, ok := store.PeriodBounds(period)
		if !ok {
			continue
		}
		homeX := meanX(store, start, end, store.TeamIndices(homeTeamID))
		awayX := meanX(store, start, end, store.TeamIndices(awayTeamID))
		homeSide := RightToLeft
		if homeX < awayX {
			homeSide = LeftToRight
		}
		m[period] = map[int]Side{homeTeamID: homeSide, awayTeamID: opposite[homeSide]}
	}
	return &Resolver{sideByPeriod: m}
}

// meanX averages the x position of a set of player columns over [start,
// end) - the period's first frame through its last-but-one, matching the
// half-open slice the reference tracking packer produces.
func meanX(store *tracking.Store, start, end int, idxList []int) float64 {
	var sum float64
	var n int
	for f := start; f < end; f++ {
		for _, idx := range idxList {
			if x, _, ok := store.Position(f, idx); ok {
				sum += float64(x)
				n++
			}
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Project returns the event's location negated (for a right-to-left team)
// or as-is (left-to-right), rounded to centimeters, or the unknown sentinel
// if the event has no location or the side couldn't be resolved.
func (r *Resolver) Project(e *model.Event) model.Coordinate {
	if !e.Location.Known || e.TeamID == nil {
		return model.Unknown()
	}
	byTeam, ok := r.sideByPeriod[e.Period]
	if !ok {
		return model.Unknown()
	}
	switch byTeam[*e.TeamID] {
	case RightToLeft:
		return model.At(round2(-e.Location.X), round2(-e.Location.Y))
	case LeftToRight:
		return model.At(round2(e.Location.X), round2(e.Location.Y))
	default:
		return model.Unknown()
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
