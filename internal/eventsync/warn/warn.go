package warn

import (
	"sort"

	"github.com/skillcorner/event-sync/internal/eventsync/report"
)

// AcceptableNegativeStartTH is the most-negative coarse period-start
// estimate (in frames) considered plausible; below it the video, the event
// feed, or the tracking data is probably broken for that period.
const AcceptableNegativeStartTH = -100

// MatchRateTH is the minimum acceptable percentage of matched events across
// a match.
const MatchRateTH = 40.0

// NegativePeriodStart warns when a period's coarse offset estimate came out
// implausibly negative.
func NegativePeriodStart(period, estimatedFrame int) {
	if estimatedFrame >= AcceptableNegativeStartTH {
		return
	}
	opsf("negative period start estimation: period=%d frame=%d", period, estimatedFrame)
	diagf("probably a problem in the video, the events, or the tracking data for period %d", period)
}

// LowMatchRate warns when too few events, among those is_matched_applicable,
// ended up matched across the whole match.
func LowMatchRate(rows []report.EventInfo) {
	var applicable, matched int
	for _, r := range rows {
		if !r.IsMatchedApplicable {
			continue
		}
		applicable++
		if r.IsMatched {
			matched++
		}
	}
	if applicable == 0 {
		return
	}
	pct := round1(100 * float64(matched) / float64(applicable))
	if pct < MatchRateTH {
		opsf("match rate too low: %.1f%%", pct)
		diagf("probably a problem in the video, the events, or the tracking data")
	}
}

// UnmappedProviderPlayerIDs warns when a provider reports player ids the
// roster could never resolve to a canonical player id. Wyscout id 0 is
// excluded: Wyscout uses it as a "no player" sentinel, not a mapping defect.
func UnmappedProviderPlayerIDs(rows []report.EventInfo, eventProvider string) {
	seen := map[int]bool{}
	for _, r := range rows {
		if r.ProviderPlayerID == nil || r.PlayerID != nil {
			continue
		}
		id := *r.ProviderPlayerID
		if eventProvider == "wyscout" && id <= 0 {
			continue
		}
		seen[id] = true
	}
	if len(seen) == 0 {
		return
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	opsf("unmapped %s_player_id values: %v", eventProvider, ids)
	diagf("probably a problem in the events or in the match roster")
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
