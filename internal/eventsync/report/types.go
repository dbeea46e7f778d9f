// Package report assembles the pipeline's three outputs: a per-event
// report, a per-event-type aggregate, and a tracking-record freeze-frame
// stream augmented with event metadata.
package report

// PlayerInfo is the roster metadata the report enriches events with.
type PlayerInfo struct {
	ID          int
	TeamID      int
	ShortName   string
	RoleAcronym string
	Number      int
	// Starting is true for a player whose provider start_time is the match
	// kickoff instant.
	Starting bool
}

// TeamInfo is the roster metadata for a team.
type TeamInfo struct {
	ID   int
	Name string
	// Type is "home_team" or "away_team".
	Type string
}

// EventInfo is one row of the per-event report.
type EventInfo struct {
	EventID          string
	EventTypeName    string
	Period           int
	Frame            int
	PlayerID         *int
	ProviderPlayerID *int
	PlayerName       string
	PlayerRole       string
	PlayerNumber     int
	Starting         bool
	TeamID           *int
	ProviderTeamID   *int
	TeamType         string
	TeamName         string

	IsMatched                   bool
	IsPlayerDetected            bool
	HasProviderPlayerIDAttached bool
	FrameTrackingDataAvailable  bool
	IsMatchedApplicable         bool
}

// EventTypeAggregate is one row of the per-event-type aggregate report.
type EventTypeAggregate struct {
	EventTypeName                           string
	NbEvents                                int
	IsMatched                               int
	PctIsMatched                            float64
	IsMatchedIsPlayerDetected               int
	IsNotMatched                            int
	IsNotMatchedIsPlayerDetected            int
	IsNotMatchedHasProviderPlayerIDAttached int
	IsNotMatchedFrameTrackingDataAvailable  int
	// IsMatchedApplicable is true if any event of this type had it set; the
	// reference aggregate sums the bool-as-int column per group then casts
	// back to bool, which is equivalent to an OR across the group.
	IsMatchedApplicable bool
}

// FreezeFrame is a tracking frame augmented with the event that landed on
// it, keyed by the event's SkcFrame.
type FreezeFrame struct {
	Frame int

	EventID          string
	EventTypeName    string
	PlayerID         *int
	ProviderPlayerID *int
	TeamID           *int
	ProviderTeamID   *int
	IsMatched        bool
	IsPlayerDetected bool

	// ProjectedEventX/Y are nil when the event had no known location or its
	// attacking side could not be resolved.
	ProjectedEventX *float64
	ProjectedEventY *float64
}
