// Package tracking packs a per-frame tracking stream into dense arrays and
// derives the kinematic and distance features the rest of the pipeline
// reads repeatedly. All heavy arrays are float32, frame-major, flattened to
// a single slice (frame*nbPlayers+playerIdx) rather than [][]float32 so the
// whole store is a handful of contiguous allocations instead of one per
// frame.
package tracking

import (
	"errors"
	"fmt"
	"math"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
)

// ErrNonMonotonicFrame is returned when the supplied frame records are not a
// contiguous, zero-based sequence (record i must have Frame == i).
var ErrNonMonotonicFrame = errors.New("eventsync/tracking: frame records must be contiguous and zero-based")

// ErrFrameOutOfRange is the error checkFrame wraps for a frame index outside
// [0, NumFrames()). The accessors below do not bounds-check and return no
// error.
var ErrFrameOutOfRange = errors.New("eventsync/tracking: frame index out of range")

// PlayerFrame is one player's tracking sample within a frame.
type PlayerFrame struct {
	PlayerID int
	X, Y     float64
	Detected bool
}

// BallFrame is the ball's tracking sample within a frame. Known is false
// when the provider has no ball detection for that frame.
type BallFrame struct {
	X, Y, Z float64
	Known   bool
}

// FrameRecord is one frame of the raw tracking stream.
type FrameRecord struct {
	Frame   int
	Period  *int
	Players []PlayerFrame
	Ball    BallFrame
	// Extra carries provider-specific passthrough fields (camera metadata,
	// possession flags, ...) so the output assembler can re-emit them
	// untouched in the freeze-frame stream.
	Extra map[string]any
}

// PlayerMeta identifies one roster player and whether they ever took the
// pitch (Active == provider's start_time != nil). Only active players get a
// column in the feature store.
type PlayerMeta struct {
	ID     int
	TeamID int
	Active bool
}

// Store is the packed tracking feature store: positions, detection flags,
// player-ball distance, and kinematics for players and ball, addressed by
// frame index and a dense player index.
type Store struct {
	Frames []FrameRecord

	nbFrames  int
	nbPlayers int

	plyIDToIdx      map[int]int
	teamIDToIdxList map[int][]int
	periodBounds    map[int][2]int

	positions   []float32 // nbFrames*nbPlayers*2, NaN = no sample for the player in that frame
	detected    []bool    // nbFrames*nbPlayers
	ball        []float32 // nbFrames*3, NaN = no ball detection
	distPlyBall []float32 // nbFrames*nbPlayers

	plySpeed, plyVX, plyVY, plyAcc []float32 // nbFrames*nbPlayers, physical-criterion masked

	ballSpeed, ballVX, ballVY, ballAcc, ballAccToRefine []float32 // nbFrames (nbPlayers==1 for the ball)
}

// NewStore packs frame records into a feature store. Records must be sorted
// and contiguous from frame 0 (record i must have Frame == i), matching the
// assumption every index into the packed arrays makes.
func NewStore(records []FrameRecord, players []PlayerMeta) (*Store, error) {
	s := &Store{
		Frames:          records,
		nbFrames:        len(records),
		plyIDToIdx:      map[int]int{},
		teamIDToIdxList: map[int][]int{},
		periodBounds:    map[int][2]int{},
	}

	idx := 0
	plyIDToTeam := map[int]int{}
	for _, p := range players {
		if !p.Active {
			continue
		}
		s.plyIDToIdx[p.ID] = idx
		plyIDToTeam[p.ID] = p.TeamID
		s.teamIDToIdxList[p.TeamID] = append(s.teamIDToIdxList[p.TeamID], idx)
		idx++
	}
	s.nbPlayers = idx

	nan := float32(math.NaN())
	s.positions = fill(make([]float32, s.nbFrames*s.nbPlayers*2), nan)
	s.detected = make([]bool, s.nbFrames*s.nbPlayers)
	s.ball = fill(make([]float32, s.nbFrames*3), nan)

	for i, rec := range records {
		if rec.Frame != i {
			return nil, fmt.Errorf("%w: record %d has Frame=%d", ErrNonMonotonicFrame, i, rec.Frame)
		}
		for _, pf := range rec.Players {
			pidx, ok := s.plyIDToIdx[pf.PlayerID]
			if !ok {
				continue
			}
			base := (i*s.nbPlayers + pidx) * 2
			s.positions[base] = float32(pf.X)
			s.positions[base+1] = float32(pf.Y)
			s.detected[i*s.nbPlayers+pidx] = pf.Detected
		}
		if rec.Ball.Known {
			s.ball[i*3] = float32(rec.Ball.X)
			s.ball[i*3+1] = float32(rec.Ball.Y)
			s.ball[i*3+2] = float32(rec.Ball.Z)
		}
		if rec.Period != nil {
			period := *rec.Period
			bounds, seen := s.periodBounds[period]
			if !seen {
				s.periodBounds[period] = [2]int{i, i}
			} else {
				s.periodBounds[period] = [2]int{bounds[0], i}
			}
		}
	}

	s.distPlyBall = s.computeDistPlyBall()
	s.computeKinematics()
	return s, nil
}

func fill(s []float32, v float32) []float32 {
	for i := range s {
		s[i] = v
	}
	return s
}

// NumFrames returns the number of packed frames.
func (s *Store) NumFrames() int { return s.nbFrames }

// NumPlayers returns the number of active roster players packed into the
// store (inactive players never occupy a column).
func (s *Store) NumPlayers() int { return s.nbPlayers }

// PlayerIndex returns the dense column index of a roster player id.
func (s *Store) PlayerIndex(playerID int) (int, bool) {
	idx, ok := s.plyIDToIdx[playerID]
	return idx, ok
}

// PlayerIDToIndex exposes the full mapping, e.g. for the offset synchronizer
// which needs to iterate every tracked player.
func (s *Store) PlayerIDToIndex() map[int]int { return s.plyIDToIdx }

// TeamIndices returns the dense column indices of a team's active players.
func (s *Store) TeamIndices(teamID int) []int { return s.teamIDToIdxList[teamID] }

// PeriodBounds returns the first and last frame index observed for a
// period, and whether the period was observed at all.
func (s *Store) PeriodBounds(period int) (start, end int, ok bool) {
	b, seen := s.periodBounds[period]
	return b[0], b[1], seen
}

func (s *Store) checkFrame(frame int) error {
	if frame < 0 || frame >= s.nbFrames {
		return fmt.Errorf("%w: %d (have %d frames)", ErrFrameOutOfRange, frame, s.nbFrames)
	}
	return nil
}

// Position returns a player's (x, y) at a frame. ok is false if the frame
// has no sample for the player; it does not depend on the Detected flag.
func (s *Store) Position(frame, plyIdx int) (x, y float32, ok bool) {
	base := (frame*s.nbPlayers + plyIdx) * 2
	x, y = s.positions[base], s.positions[base+1]
	return x, y, !(isNaN(x) || isNaN(y))
}

// Detected reports whether the player was detected in the given frame.
func (s *Store) Detected(frame, plyIdx int) bool {
	return s.detected[frame*s.nbPlayers+plyIdx]
}

// DistPlyBall returns the euclidean distance between a player and the ball
// at a frame, or NaN if either position is unknown.
func (s *Store) DistPlyBall(frame, plyIdx int) float32 {
	return s.distPlyBall[frame*s.nbPlayers+plyIdx]
}

// PlayerKinematics returns a player's speed norm, velocity components, and
// report-smoothing acceleration at a frame, after physical-criterion
// masking. Values are NaN where masked or unavailable.
func (s *Store) PlayerKinematics(frame, plyIdx int) (speed, vx, vy, acc float32) {
	i := frame*s.nbPlayers + plyIdx
	return s.plySpeed[i], s.plyVX[i], s.plyVY[i], s.plyAcc[i]
}

// BallKinematics returns the ball's speed norm, velocity components,
// report-smoothing acceleration, and refine-smoothing acceleration at a
// frame. The ball is never physical-criterion masked.
func (s *Store) BallKinematics(frame int) (speed, vx, vy, acc, accToRefine float32) {
	return s.ballSpeed[frame], s.ballVX[frame], s.ballVY[frame], s.ballAcc[frame], s.ballAccToRefine[frame]
}

func isNaN(v float32) bool { return v != v }

func (s *Store) computeDistPlyBall() []float32 {
	out := make([]float32, s.nbFrames*s.nbPlayers)
	for f := 0; f < s.nbFrames; f++ {
		bx, by := s.ball[f*3], s.ball[f*3+1]
		for p := 0; p < s.nbPlayers; p++ {
			idx := f*s.nbPlayers + p
			px, py := s.positions[idx*2], s.positions[idx*2+1]
			out[idx] = float32(math.Hypot(float64(px-bx), float64(py-by)))
		}
	}
	return out
}

// compile-time reminder that model.FPS is the rate these derivations assume.
var _ = model.FPS
