// Package statsbomb adapts Statsbomb match events into the canonical event
// model. Statsbomb team ids are resolved directly from the known home-team
// id rather than jersey-number-set matching (see pmap), since Statsbomb
// reports which of its two team ids is the home team.
package statsbomb

const passTypeID = 30
const shotTypeID = 16
const noPeriodID = -1

// offsetRefine is the frame half-width the refiner searches around a
// to-refine Statsbomb event.
const offsetRefine = 5

var possiblePeriodIDs = map[int]bool{1: true, 2: true, 3: true, 4: true}

var noIsMatchedApplicable = map[string]bool{
	"Tactical Shift": true, "Substitution": true, "Referee Ball-Drop": true, "Player Off": true,
	"Player On": true, "Injury Stoppage": true, "Half End": true, "Half Start": true, "Starting XI": true,
}

// RawEvent is one Statsbomb event, already parsed from the provider's JSON
// feed.
type RawEvent struct {
	ID        string
	Period    int
	Timestamp string // "HH:MM:SS.ffffff", minutes/seconds since period start
	PlayerID  *int
	TeamID    *int
	TypeID    int
	TypeName  string
	X, Y      *float64 // Statsbomb pitch coordinates, 0-120 x 0-80
}

// LineupEntry is one player as reported in the Statsbomb lineup feed.
type LineupEntry struct {
	TeamID        int
	PlayerID      int
	JerseyNumber  int
	HasPositions  bool // whether the "positions" list is present
	PositionCount int  // len(positions); 0 means the player never took the pitch
}

// ActiveLineup filters a raw Statsbomb lineup down to players who actually
// played, matching both the old (lineup-only-contains-active-players) and
// new (lineup contains everyone, with an empty positions list for unused
// players) feed formats.
func ActiveLineup(entries []LineupEntry) []LineupEntry {
	hasPositionsKey := true
	for _, e := range entries {
		if !e.HasPositions {
			hasPositionsKey = false
			break
		}
	}
	if !hasPositionsKey {
		return entries
	}
	out := make([]LineupEntry, 0, len(entries))
	for _, e := range entries {
		if e.PositionCount > 0 {
			out = append(out, e)
		}
	}
	return out
}

// TeamIDMapping resolves SKC team id -> Statsbomb team id given the known
// Statsbomb home team id and the two lineup team ids (in provider order).
func TeamIDMapping(skcHomeTeamID, skcAwayTeamID, stbHomeTeamID, stbTeamA, stbTeamB int) (map[int]int, bool) {
	switch stbHomeTeamID {
	case stbTeamA:
		return map[int]int{skcHomeTeamID: stbTeamA, skcAwayTeamID: stbTeamB}, true
	case stbTeamB:
		return map[int]int{skcHomeTeamID: stbTeamB, skcAwayTeamID: stbTeamA}, true
	default:
		return nil, false
	}
}
