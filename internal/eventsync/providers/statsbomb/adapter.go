package statsbomb

import (
	"strconv"
	"strings"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
)

const stbLength = 120.0
const stbWidth = 80.0

// Adapter converts raw Statsbomb events for one match into canonical events.
type Adapter struct {
	events           []RawEvent
	pitchLength      float64
	pitchWidth       float64
	teamIDToSkcTeam  map[int]int
	plyIDToSkcPlayer map[int]*int
}

// New builds an Adapter from resolved team/player id mappings.
func New(events []RawEvent, pitchLength, pitchWidth float64, teamIDToSkcTeam map[int]int, plyIDToSkcPlayer map[int]*int) *Adapter {
	return &Adapter{
		events:           events,
		pitchLength:      pitchLength,
		pitchWidth:       pitchWidth,
		teamIDToSkcTeam:  teamIDToSkcTeam,
		plyIDToSkcPlayer: plyIDToSkcPlayer,
	}
}

// timestampSeconds parses Statsbomb's "HH:MM:SS.ffffff" period-relative
// timestamp into seconds, ignoring the hour field as the source does.
func timestampSeconds(ts string) (float64, bool) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	return float64(minutes)*60 + sec, true
}

func genericType(typeID int) model.GenericType {
	switch typeID {
	case passTypeID:
		return model.Pass
	case shotTypeID:
		return model.Shot
	default:
		return model.Generic
	}
}

// Standardize converts every eligible raw event (skipping events outside
// the four regular periods) into a canonical Event.
func (a *Adapter) Standardize() []*model.Event {
	out := make([]*model.Event, 0, len(a.events))
	for _, re := range a.events {
		period := re.Period
		if period == 0 {
			period = noPeriodID
		}
		if !possiblePeriodIDs[period] {
			continue
		}
		ts, ok := timestampSeconds(re.Timestamp)
		if !ok {
			continue
		}

		gType := genericType(re.TypeID)

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
			x := (*re.X - stbLength/2) * a.pitchLength / stbLength
			y := -(*re.Y - stbWidth/2) * a.pitchWidth / stbWidth
			loc = model.At(x, y)
		}

		toRefine := gType == model.Pass || gType == model.Shot
		ev := &model.Event{
			ID:                  re.ID,
			Period:              period,
			Timestamp:           ts,
			GenericType:         gType,
			EventTypeName:       re.TypeName,
			PlayerID:            playerID,
			ProviderPlayerID:    re.PlayerID,
			TeamID:              teamID,
			ProviderTeamID:      re.TeamID,
			Location:            loc,
			ToRefine:            toRefine,
			IsMatchedApplicable: !noIsMatchedApplicable[re.TypeName],
		}
		if toRefine {
			v := offsetRefine
			ev.OffsetRefine = &v
		}
		out = append(out, ev)
	}
	return out
}
