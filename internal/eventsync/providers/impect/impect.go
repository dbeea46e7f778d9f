// Package impect adapts Impect match events into the canonical event model.
// Team/player ids are resolved via pmap jersey-number-set matching, keyed on
// Impect's "shirtNumber" field.
package impect

import (
	"github.com/skillcorner/event-sync/internal/eventsync/model"
)

const passTypeID = "PASS"
const shotTypeID = "SHOT"
const headTypeID = "HEAD"
const noPeriodID = -1

var possiblePeriodIDs = map[int]bool{1: true, 2: true, 3: true, 4: true}
var firstTouchPrimaryTypes = map[string]bool{"RECEPTION": true, "CLEARANCE": true, "BLOCK": true, "INTERCEPTION": true}
var noIsMatchedApplicable = map[string]bool{"NO_VIDEO": true, "FINAL_WHISTLE": true, "KICK_OFF": true, "OUT": true}

// forceRefinePreviousTypes are the previous-event action types that make the
// current PASS a force-to-refine candidate: the ball was only just won, so
// its provider timestamp is unusually likely to be off.
var forceRefinePreviousTypes = map[string]bool{"RECEPTION": true, "LOOSE_BALL_REGAIN": true, "INTERCEPTION": true}

// offsetForceRefine/offsetRefine are the frame half-widths the refiner
// searches, force-to-refine events getting a wider window.
const offsetForceRefine = 15
const offsetRefine = 5

var periodStartsSeconds = map[int]float64{1: 0.0, 2: 10000.0, 3: 20000.0, 4: 23333.33}

// RawEvent is one Impect event, already parsed from the provider's JSON
// feed.
type RawEvent struct {
	ID            string
	PeriodID      int
	GameTimeInSec float64
	PlayerID      *int
	TeamID        *int // squadId
	ActionType    string
	BodyPart      string
	X, Y          *float64 // Impect pitch coordinates, 105m x 68m reference
}

func genericType(actionType string) model.GenericType {
	switch actionType {
	case passTypeID:
		return model.Pass
	case shotTypeID:
		return model.Shot
	default:
		return model.Generic
	}
}

func forceToRefine(actionType, bodyPart, previousActionType string) bool {
	return actionType == "PASS" && forceRefinePreviousTypes[previousActionType] && bodyPart != headTypeID
}

// Adapter converts raw Impect events for one match into canonical events.
// The events passed to New must be in chronological order: force-to-refine
// depends on each event's predecessor's action type.
type Adapter struct {
	events           []RawEvent
	pitchLength      float64
	pitchWidth       float64
	teamIDToSkcTeam  map[int]int
	plyIDToSkcPlayer map[int]*int
}

// New builds an Adapter from resolved team/player id mappings (see pmap).
func New(events []RawEvent, pitchLength, pitchWidth float64, teamIDToSkcTeam map[int]int, plyIDToSkcPlayer map[int]*int) *Adapter {
	return &Adapter{
		events:           events,
		pitchLength:      pitchLength,
		pitchWidth:       pitchWidth,
		teamIDToSkcTeam:  teamIDToSkcTeam,
		plyIDToSkcPlayer: plyIDToSkcPlayer,
	}
}

// Standardize converts every eligible raw event (skipping events outside
// the four regular periods) into a canonical Event.
func (a *Adapter) Standardize() []*model.Event {
	out := make([]*model.Event, 0, len(a.events))
	previousActionType := ""
	for _, re := range a.events {
		period := re.PeriodID
		if _, ok := periodStartsSeconds[period]; !ok {
			period = noPeriodID
		}
		if !possiblePeriodIDs[period] {
			continue
		}

		gType := genericType(re.ActionType)

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
			x := *re.X * a.pitchLength / 105
			y := *re.Y * a.pitchWidth / 68
			loc = model.At(x, y)
		}

		touch := model.LastTouch
		if firstTouchPrimaryTypes[re.ActionType] {
			touch = model.FirstTouch
		}

		toRefine := gType == model.Pass || gType == model.Shot
		force := forceToRefine(re.ActionType, re.BodyPart, previousActionType)
		ev := &model.Event{
			ID:                  re.ID,
			Period:              period,
			Timestamp:           re.GameTimeInSec - periodStartsSeconds[period],
			GenericType:         gType,
			EventTypeName:       re.ActionType,
			TouchType:           &touch,
			PlayerID:            playerID,
			ProviderPlayerID:    re.PlayerID,
			TeamID:              teamID,
			ProviderTeamID:      re.TeamID,
			Location:            loc,
			ToRefine:            toRefine,
			ForceToRefine:       force,
			IsHead:              re.BodyPart == headTypeID,
			IsMatchedApplicable: !noIsMatchedApplicable[re.ActionType],
		}
		switch {
		case force:
			v := offsetForceRefine
			ev.OffsetRefine = &v
		case toRefine:
			v := offsetRefine
			ev.OffsetRefine = &v
		}

		previousActionType = re.ActionType
		out = append(out, ev)
	}
	return out
}
