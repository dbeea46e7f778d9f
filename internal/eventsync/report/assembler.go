package report

import (
	"github.com/skillcorner/event-sync/internal/eventsync/attackside"
	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

// Roster resolves the player/team metadata the assembler enriches events
// with. A single implementation typically wraps the match catalogue an
// adapter parsed.
type Roster struct {
	Players map[int]PlayerInfo
	Teams   map[int]TeamInfo
}

// Assembler turns a synchronized, matched event list into the three report
// outputs: per-event info, per-event-type aggregate, and freeze frames.
type Assembler struct {
	store    *tracking.Store
	roster   Roster
	resolver *attackside.Resolver
}

// New builds an Assembler. resolver may be nil, in which case every event's
// projected coordinate is the unknown sentinel.
func New(store *tracking.Store, roster Roster, resolver *attackside.Resolver) *Assembler {
	return &Assembler{store: store, roster: roster, resolver: resolver}
}

// EventInfo builds the per-event report row for a single event.
func (a *Assembler) EventInfo(e *model.Event) EventInfo {
	info := EventInfo{
		EventID:                     e.ID,
		EventTypeName:               e.EventTypeName,
		Period:                      e.Period,
		Frame:                       e.SkcFrame,
		PlayerID:                    e.PlayerID,
		ProviderPlayerID:            e.ProviderPlayerID,
		TeamID:                      e.TeamID,
		ProviderTeamID:              e.ProviderTeamID,
		IsMatched:                   e.IsMatched,
		IsPlayerDetected:            e.IsPlayerDetected,
		HasProviderPlayerIDAttached: e.HasProviderPlayerID,
		FrameTrackingDataAvailable:  e.FrameTrackingDataAvailable,
		IsMatchedApplicable:         e.IsMatchedApplicable,
	}
	if e.PlayerID != nil {
		if p, ok := a.roster.Players[*e.PlayerID]; ok {
			info.PlayerName = p.ShortName
			info.PlayerRole = p.RoleAcronym
			info.PlayerNumber = p.Number
			info.Starting = p.Starting
		}
	}
	if e.TeamID != nil {
		if t, ok := a.roster.Teams[*e.TeamID]; ok {
			info.TeamType = t.Type
			info.TeamName = t.Name
		}
	}
	return info
}

// Reports builds the per-event report for every event.
func (a *Assembler) Reports(events []*model.Event) []EventInfo {
	out := make([]EventInfo, len(events))
	for i, e := range events {
		out[i] = a.EventInfo(e)
	}
	return out
}

// Aggregate groups the per-event report by event type.
func Aggregate(rows []EventInfo) []EventTypeAggregate {
	order := make([]string, 0)
	byType := map[string]*EventTypeAggregate{}
	for _, r := range rows {
		agg, ok := byType[r.EventTypeName]
		if !ok {
			agg = &EventTypeAggregate{EventTypeName: r.EventTypeName}
			byType[r.EventTypeName] = agg
			order = append(order, r.EventTypeName)
		}
		agg.NbEvents++
		if r.IsMatched {
			agg.IsMatched++
			if r.IsPlayerDetected {
				agg.IsMatchedIsPlayerDetected++
			}
		} else {
			agg.IsNotMatched++
			if r.IsPlayerDetected {
				agg.IsNotMatchedIsPlayerDetected++
			}
			if r.HasProviderPlayerIDAttached {
				agg.IsNotMatchedHasProviderPlayerIDAttached++
			}
			if r.FrameTrackingDataAvailable {
				agg.IsNotMatchedFrameTrackingDataAvailable++
			}
		}
		if r.IsMatchedApplicable {
			agg.IsMatchedApplicable = true
		}
	}
	out := make([]EventTypeAggregate, 0, len(order))
	for _, t := range order {
		agg := *byType[t]
		if agg.NbEvents > 0 {
			agg.PctIsMatched = 100 * float64(agg.IsMatched) / float64(agg.NbEvents)
		}
		out = append(out, agg)
	}
	return out
}

// FreezeFrame builds the freeze-frame row for an event, keyed by its
// SkcFrame. ok is false when the event's frame falls outside the tracking
// stream.
func (a *Assembler) FreezeFrame(e *model.Event) (FreezeFrame, bool) {
	if e.SkcFrame < 0 || e.SkcFrame >= a.store.NumFrames() {
		return FreezeFrame{}, false
	}
	ff := FreezeFrame{
		Frame:            e.SkcFrame,
		EventID:          e.ID,
		EventTypeName:    e.EventTypeName,
		PlayerID:         e.PlayerID,
		ProviderPlayerID: e.ProviderPlayerID,
		TeamID:           e.TeamID,
		ProviderTeamID:   e.ProviderTeamID,
		IsMatched:        e.IsMatched,
		IsPlayerDetected: e.IsPlayerDetected,
	}
	if a.resolver != nil {
		if c := a.resolver.Project(e); c.Known {
			x, y := c.X, c.Y
			ff.ProjectedEventX, ff.ProjectedEventY = &x, &y
		}
	}
	return ff, true
}

// FreezeFrames builds the freeze-frame stream for every event whose frame
// lands inside the tracking stream, one row per event (not deduplicated by
// frame - a frame with two matched events yields two rows).
func (a *Assembler) FreezeFrames(events []*model.Event) []FreezeFrame {
	out := make([]FreezeFrame, 0, len(events))
	for _, e := range events {
		if ff, ok := a.FreezeFrame(e); ok {
			out = append(out, ff)
		}
	}
	return out
}

// Report bundles the three outputs the pipeline produces for one match.
type Report struct {
	Events       []EventInfo
	ByEventType  []EventTypeAggregate
	FreezeFrames []FreezeFrame
}

// Assemble builds the full report for a synchronized, matched event list.
func (a *Assembler) Assemble(events []*model.Event) Report {
	evs := a.Reports(events)
	return Report{
		Events:       evs,
		ByEventType:  Aggregate(evs),
		FreezeFrames: a.FreezeFrames(events),
	}
}
