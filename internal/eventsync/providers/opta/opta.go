// Package opta adapts Opta F24-style match events into the canonical event
// model.
package opta

import (
	"time"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
)

const startPeriodTypeID = 32
const teamSetUpTypeID = 34
const penaltyShootoutPeriodID = 14

var passTypeIDs = map[int]bool{1: true, 2: true}
var shotTypeIDs = map[int]bool{13: true, 14: true, 15: true, 16: true}
var firstTouchTypeIDs = map[int]bool{7: true, 8: true, 10: true, 12: true, 49: true, 52: true, 59: true}
var possiblePeriodIDs = map[int]bool{1: true, 2: true, 3: true, 4: true}

// offsetRefine is the frame half-width the refiner searches around a
// to-refine Opta event.
const offsetRefine = 10

var eventTypeNames = map[int]string{
	1: "Pass", 2: "Offside Pass", 3: "Take On", 4: "Foul", 5: "Out", 6: "Corner Awarded",
	7: "Tackle", 8: "Interception", 10: "Save Goalkeeper", 11: "Claim Goalkeeper", 12: "Clearance",
	13: "Miss", 14: "Post", 15: "Attempt Saved", 16: "Goal", 17: "Card Bookings", 18: "Player off",
	19: "Player on", 20: "Player retired", 21: "Player returns", 22: "Player becomes goalkeeper",
	23: "Goalkeeper becomes player", 24: "Condition change", 25: "Official change", 27: "Start delay",
	28: "End delay", 30: "End", 32: "Start", 34: "Team set up", 35: "Player changed position",
	36: "Player changed Jersey", 37: "Collection End", 38: "Temp_Goal", 39: "Temp_Attempt",
	40: "Formation change", 41: "Punch", 42: "Good Skill", 43: "Deleted event", 44: "Aerial",
	45: "Challenge", 47: "Rescinded card", 49: "Ball recovery", 50: "Dispossessed", 51: "Error",
	52: "Keeper pick-up", 53: "Cross not claimed", 54: "Smother", 55: "Offside provoked",
	56: "Shield ball opp", 57: "Foul throw-in", 58: "Penalty faced", 59: "Keeper Sweeper",
	60: "Chance missed", 61: "Ball touch", 63: "Temp_Save", 64: "Resume",
	65: "Contentious referee decision",
}

var noIsMatchedApplicable = map[string]bool{
	"Start": true, "Start delay": true, "End delay": true, "End": true, "Team set up": true,
	"Formation change": true, "Deleted event": true, "Player off": true, "Player on": true,
	"Player changed position": true, "Player changed Jersey": true, "Player retired": true,
	"Player returns": true, "Player becomes goalkeeper": true, "Goalkeeper becomes player": true,
	"Official change": true, "Condition change": true, "Collection End": true, "Temp_Goal": true,
	"Temp_Attempt": true, "Resume": true, "Contentious referee decision": true, "Card Bookings": true,
}

// RawEvent is one Opta F24 event, already parsed from whichever wire format
// (XML or JSON feed) the ingestion layer fetched.
type RawEvent struct {
	ID        string
	TypeID    int
	PeriodID  int
	Timestamp string // "2026-07-31T15:00:03.120"
	PlayerID  *int
	TeamID    *int
	X, Y      *float64
}

// Adapter converts raw Opta events for one match into canonical events.
type Adapter struct {
	events           []RawEvent
	pitchLength      float64
	pitchWidth       float64
	teamIDToSkcTeam  map[int]int
	plyIDToSkcPlayer map[int]*int
	periodStarts     map[int]time.Time
}

// New builds an Adapter. teamIDToSkcTeam/plyIDToSkcPlayer come from resolving
// the match's jersey-number sets against the roster via pmap.
func New(events []RawEvent, pitchLength, pitchWidth float64, teamIDToSkcTeam map[int]int, plyIDToSkcPlayer map[int]*int) *Adapter {
	a := &Adapter{
		events:           events,
		pitchLength:      pitchLength,
		pitchWidth:       pitchWidth,
		teamIDToSkcTeam:  teamIDToSkcTeam,
		plyIDToSkcPlayer: plyIDToSkcPlayer,
	}
	a.periodStarts = a.periodStartsDatetimes()
	return a
}

func (a *Adapter) periodStartsDatetimes() map[int]time.Time {
	out := map[int]time.Time{}
	for _, e := range a.events {
		if e.TypeID != startPeriodTypeID {
			continue
		}
		if t, err := time.Parse("2006-01-02T15:04:05.999999", e.Timestamp); err == nil {
			out[e.PeriodID] = t
		}
	}
	return out
}

func genericType(typeID int) model.GenericType {
	switch {
	case passTypeIDs[typeID]:
		return model.Pass
	case shotTypeIDs[typeID]:
		return model.Shot
	default:
		return model.Generic
	}
}

func touchType(typeID int) model.TouchType {
	if firstTouchTypeIDs[typeID] {
		return model.FirstTouch
	}
	return model.LastTouch
}

// Standardize converts every eligible raw event (skipping team-set-up
// markers, penalty shootouts, and out-of-range periods) into a canonical
// Event.
func (a *Adapter) Standardize() []*model.Event {
	out := make([]*model.Event, 0, len(a.events))
	for _, re := range a.events {
		if re.TypeID == teamSetUpTypeID || re.PeriodID == penaltyShootoutPeriodID || !possiblePeriodIDs[re.PeriodID] {
			continue
		}
		start, ok := a.periodStarts[re.PeriodID]
		if !ok {
			continue
		}
		t, err := time.Parse("2006-01-02T15:04:05.999999", re.Timestamp)
		if err != nil {
			continue
		}

		gType := genericType(re.TypeID)
		typeName, known := eventTypeNames[re.TypeID]
		if !known {
			typeName = "unknown"
		}
		touch := touchType(re.TypeID)

		var playerID *int
		if re.PlayerID != nil {
			playerID = a.plyIDToSkcPlayer[*re.PlayerID]
		}
		var teamID *int
		if re.TeamID != nil {
			if skcTeam, ok := a.teamIDToSkcTeam[*re.TeamID]; ok {
				v := skcTeam
				teamID = &v
			}
		}

		loc := model.Unknown()
		if re.X != nil && re.Y != nil {
			loc = model.At((*re.X-50)*a.pitchLength/100, (*re.Y-50)*a.pitchWidth/100)
		}

		toRefine := gType == model.Pass || gType == model.Shot
		ev := &model.Event{
			ID:                  re.ID,
			Period:              re.PeriodID,
			Timestamp:           t.Sub(start).Seconds(),
			GenericType:         gType,
			EventTypeName:       typeName,
			TouchType:           &touch,
			PlayerID:            playerID,
			ProviderPlayerID:    re.PlayerID,
			TeamID:              teamID,
			ProviderTeamID:      re.TeamID,
			Location:            loc,
			ToRefine:            toRefine,
			IsMatchedApplicable: !noIsMatchedApplicable[typeName],
		}
		if toRefine {
			v := offsetRefine
			ev.OffsetRefine = &v
		}
		out = append(out, ev)
	}
	return out
}
