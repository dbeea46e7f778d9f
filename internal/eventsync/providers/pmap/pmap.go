// Package pmap maps a provider's player/team ids onto the canonical roster
// ids, by matching each team's jersey-number set rather than any id field -
// provider ids have no relation to roster ids, but the eleven jersey numbers
// a team fields are shared ground truth both sides report.
package pmap

// Player is the subset of roster player fields the mapping needs.
type Player struct {
	ID     int
	TeamID int
	Number int
	// Started is true when the player has a non-nil start_time, i.e. they
	// actually took the pitch; jersey sets are only comparable over players
	// who played.
	Started bool
}

// Roster indexes the canonical roster for jersey-set matching.
type Roster struct {
	byID            map[int]Player
	teamIDToJnoList map[int][]int
}

// NewRoster builds a Roster from the canonical player list. homeTeamID and
// awayTeamID fix iteration order so team-id-to-team-id mapping is
// deterministic when both teams happen to share a jersey set (defensive;
// should never happen for a real match).
func NewRoster(players []Player, homeTeamID, awayTeamID int) *Roster {
	r := &Roster{byID: map[int]Player{}, teamIDToJnoList: map[int][]int{homeTeamID: nil, awayTeamID: nil}}
	for _, p := range players {
		r.byID[p.ID] = p
		if !p.Started {
			continue
		}
		if _, ok := r.teamIDToJnoList[p.TeamID]; ok {
			r.teamIDToJnoList[p.TeamID] = append(r.teamIDToJnoList[p.TeamID], p.Number)
		}
	}
	return r
}

// TeamIDMapping resolves SKC team id -> provider team id by matching jersey
// number sets, given the provider's own team-to-jersey-number-list mapping.
// It returns ok=false if either side's two teams share an identical jersey
// set (ambiguous) or if no consistent 1:1 mapping exists.
func (r *Roster) TeamIDMapping(providerTeamIDToJnoList map[int][]int) (map[int]int, bool) {
	return jnoSetMapping(r.teamIDToJnoList, providerTeamIDToJnoList)
}

// ProviderTeamJnoToSkcPlayerID builds (provider team id, jersey number) ->
// SKC player id, given the resolved SKC-to-provider team mapping.
func (r *Roster) ProviderTeamJnoToSkcPlayerID(skcTeamIDToProviderTeamID map[int]int) map[[2]int]int {
	out := make(map[[2]int]int, len(r.byID))
	for plyID, p := range r.byID {
		providerTeamID, ok := skcTeamIDToProviderTeamID[p.TeamID]
		if !ok {
			continue
		}
		out[[2]int{providerTeamID, p.Number}] = plyID
	}
	return out
}

// ProviderPlayer is the subset of a provider's own player record the
// id-to-id mapping needs.
type ProviderPlayer struct {
	TeamID int
	Number int
}

// ResolveProviderPlayerIDs maps every provider player id to an SKC player
// id, given the resolved SKC-to-provider team mapping. A provider player
// whose (team, jersey number) has no SKC counterpart maps to ok=false for
// that id.
func (r *Roster) ResolveProviderPlayerIDs(
	providerPlyIDToPly map[int]ProviderPlayer,
	skcTeamIDToProviderTeamID map[int]int,
) map[int]*int {
	lookup := r.ProviderTeamJnoToSkcPlayerID(skcTeamIDToProviderTeamID)
	out := make(map[int]*int, len(providerPlyIDToPly))
	for providerPlyID, pp := range providerPlyIDToPly {
		if plyID, ok := lookup[[2]int{pp.TeamID, pp.Number}]; ok {
			v := plyID
			out[providerPlyID] = &v
		} else {
			out[providerPlyID] = nil
		}
	}
	return out
}

// jnoSetMapping compares each side's two jersey-number sets and returns the
// SKC-team-id -> provider-team-id mapping if, and only if, exactly one
// consistent pairing of equal sets exists.
func jnoSetMapping(skcTeamIDToJnoList, providerTeamIDToJnoList map[int][]int) (map[int]int, bool) {
	skcIDs := mapKeys(skcTeamIDToJnoList)
	if len(skcIDs) != 2 {
		return nil, false
	}
	if setEqual(skcTeamIDToJnoList[skcIDs[0]], skcTeamIDToJnoList[skcIDs[1]]) {
		return nil, false
	}

	providerIDs := mapKeys(providerTeamIDToJnoList)
	if len(providerIDs) != 2 {
		return nil, false
	}
	if setEqual(providerTeamIDToJnoList[providerIDs[0]], providerTeamIDToJnoList[providerIDs[1]]) {
		return nil, false
	}

	out := map[int]int{}
	for _, skcID := range skcIDs {
		for _, providerID := range providerIDs {
			if setEqual(skcTeamIDToJnoList[skcID], providerTeamIDToJnoList[providerID]) {
				out[skcID] = providerID
			}
		}
	}
	if len(out) != 2 {
		return nil, false
	}
	return out, true
}

func mapKeys(m map[int][]int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func setEqual(a, b []int) bool {
	sa, sb := toSet(a), toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for v := range sa {
		if !sb[v] {
			return false
		}
	}
	return true
}

func toSet(xs []int) map[int]bool {
	s := make(map[int]bool, len(xs))
	for _, x := range xs {
		s[x] = true
	}
	return s
}
