// Package wyscout adapts Wyscout match events into the canonical event
// model. Wyscout reports each roster player's own id directly on the
// player record, so team/player id resolution is a straight lookup rather
// than jersey-number-set matching (see pmap, used by statsbomb/impect).
package wyscout

import (
	"sort"
	"strconv"
	"strings"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
)

var periodStartMinute = map[int]float64{1: 0, 2: 45, 3: 90, 4: 105, 5: 120}
var periodNames = map[string]int{"1H": 1, "2H": 2, "1E": 3, "2E": 4}

var firstTouchPrimaryTypes = map[string]bool{"clearance": true, "interception": true, "touch": true}
var firstTouchPrimaryAndSecondary = map[string][]string{"duel": {"sliding_tackle"}, "shot_against": {"save"}}

var noIsMatchedApplicable = map[string]bool{"game_interruption": true}

// offsetRefine is the frame half-width the refiner searches around a
// to-refine Wyscout event.
const offsetRefine = 10

// RawEvent is one Wyscout event, already parsed from the provider's JSON
// feed.
type RawEvent struct {
	ID               string
	MatchPeriod      string // "1H", "2H", "1E", "2E", or "P..." for shootouts
	PlayerID         int
	TeamID           *int
	PrimaryType      string
	SecondaryTypes   []string
	X, Y             *float64
	MatchTimestamp   string // "HH:MM:SS.ffffff"
	VideoTimestamp   string // numeric seconds, "-" prefixed when unavailable
}

// Player is the subset of roster fields needed to resolve Wyscout ids.
type Player struct {
	SkcPlayerID int
	WyscoutID   int
	TeamID      int
}

func genericType(re RawEvent) model.GenericType {
	switch {
	case re.PrimaryType == "pass", isPotentialPass(re):
		return model.Pass
	case re.PrimaryType == "shot":
		return model.Shot
	default:
		return model.Generic
	}
}

func isPotentialPass(re RawEvent) bool {
	if re.PrimaryType != "interception" {
		return false
	}
	for _, s := range re.SecondaryTypes {
		if s == "pass" || s == "head_pass" {
			return true
		}
	}
	return false
}

func isFirstTouch(re RawEvent) bool {
	if firstTouchPrimaryTypes[re.PrimaryType] {
		return true
	}
	wanted, ok := firstTouchPrimaryAndSecondary[re.PrimaryType]
	if !ok {
		return false
	}
	for _, w := range wanted {
		for _, s := range re.SecondaryTypes {
			if w == s {
				return true
			}
		}
	}
	return false
}

// Adapter converts raw Wyscout events for one match into canonical events.
type Adapter struct {
	events           []RawEvent
	pitchLength      float64
	pitchWidth       float64
	wyscoutIDToSkc   map[int]*int
	teamIDToSkcTeam  map[int]int
}

// New builds an Adapter. wyscoutIDToSkc maps Wyscout player id -> SKC player
// id (built directly from each roster player's wyscout_id field).
func New(events []RawEvent, pitchLength, pitchWidth float64, roster []Player) *Adapter {
	wyscoutIDToSkc := map[int]*int{}
	wyscoutIDToTeam := map[int]int{}
	for _, p := range roster {
		v := p.SkcPlayerID
		wyscoutIDToSkc[p.WyscoutID] = &v
		wyscoutIDToTeam[p.WyscoutID] = p.TeamID
	}

	teamIDToSkcTeam := map[int]int{}
	for _, re := range events {
		if re.TeamID == nil {
			continue
		}
		if team, ok := wyscoutIDToTeam[re.PlayerID]; ok {
			teamIDToSkcTeam[*re.TeamID] = team
		}
		if len(teamIDToSkcTeam) == 2 {
			break
		}
	}

	return &Adapter{
		events:          events,
		pitchLength:     pitchLength,
		pitchWidth:      pitchWidth,
		wyscoutIDToSkc:  wyscoutIDToSkc,
		teamIDToSkcTeam: teamIDToSkcTeam,
	}
}

func parseClockSeconds(ts string) (float64, bool) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(h)*3600 + float64(m)*60 + s, true
}

// offsetsByPeriod replicates the reference kickoff-anchoring logic: for each
// period, the timestamp of the first event (in video-timestamp order) of
// that period becomes the zero point every other event's timestamp in that
// period is measured against.
func offsetsByPeriod(events []RawEvent) (map[int]float64, bool) {
	useMatchTimestamp := true
	order := make([]int, len(events))
	videoTs := make([]float64, len(events))
	for i, re := range events {
		order[i] = i
		v, _ := strconv.ParseFloat(re.VideoTimestamp, 64)
		videoTs[i] = v
		if strings.Contains(re.MatchTimestamp, "-") {
			useMatchTimestamp = false
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return videoTs[order[a]] < videoTs[order[b]] })

	offsets := map[int]float64{}
	for _, period := range []int{1, 2, 3, 4} {
		for _, idx := range order {
			re := events[idx]
			p, ok := periodNames[re.MatchPeriod]
			if !ok || p != period {
				continue
			}
			if _, already := offsets[period]; already {
				break
			}
			if useMatchTimestamp {
				sec, ok := parseClockSeconds(re.MatchTimestamp)
				if !ok {
					continue
				}
				offsets[period] = sec - periodStartMinute[period]*60
			} else {
				v, err := strconv.ParseFloat(re.VideoTimestamp, 64)
				if err != nil {
					continue
				}
				offsets[period] = v
			}
			break
		}
	}
	return offsets, useMatchTimestamp
}

func (a *Adapter) timestamp(re RawEvent, period int, offset float64, useMatchTimestamp bool) (float64, bool) {
	if useMatchTimestamp {
		sec, ok := parseClockSeconds(re.MatchTimestamp)
		if !ok {
			return 0, false
		}
		return sec - periodStartMinute[period]*60 - offset, true
	}
	v, err := strconv.ParseFloat(re.VideoTimestamp, 64)
	if err != nil {
		return 0, false
	}
	return v - offset, true
}

// Standardize converts every eligible raw event (skipping penalty shootout
// events, whose matchPeriod starts with "P") into a canonical Event.
func (a *Adapter) Standardize() []*model.Event {
	offsets, useMatchTimestamp := offsetsByPeriod(a.events)

	out := make([]*model.Event, 0, len(a.events))
	for _, re := range a.events {
		if strings.HasPrefix(re.MatchPeriod, "P") {
			continue
		}
		period, ok := periodNames[re.MatchPeriod]
		if !ok {
			continue
		}
		ts, ok := a.timestamp(re, period, offsets[period], useMatchTimestamp)
		if !ok {
			continue
		}

		gType := genericType(re)
		playerID := a.wyscoutIDToSkc[re.PlayerID]

		var teamID *int
		if re.TeamID != nil {
			if skcTeam, ok := a.teamIDToSkcTeam[*re.TeamID]; ok {
				v := skcTeam
				teamID = &v
			}
		}

		loc := model.Unknown()
		if re.X != nil && re.Y != nil {
			x := (*re.X - 50) * a.pitchLength / 100
			y := -(*re.Y - 50) * a.pitchWidth / 100
			loc = model.At(x, y)
		}

		touch := model.LastTouch
		if isFirstTouch(re) {
			touch = model.FirstTouch
		}

		toRefine := gType == model.Pass || gType == model.Shot
		ev := &model.Event{
			ID:                  re.ID,
			Period:              period,
			Timestamp:           ts,
			GenericType:         gType,
			EventTypeName:       re.PrimaryType,
			TouchType:           &touch,
			PlayerID:            playerID,
			ProviderPlayerID:    &re.PlayerID,
			TeamID:              teamID,
			ProviderTeamID:      re.TeamID,
			Location:            loc,
			ToRefine:            toRefine,
			IsMatchedApplicable: !noIsMatchedApplicable[re.PrimaryType],
		}
		if toRefine {
			v := offsetRefine
			ev.OffsetRefine = &v
		}
		out = append(out, ev)
	}
	return out
}
