package refine

import (
	"math"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

// Refiner refines event SkcFrame values using tracking-derived ball
// acceleration. Events must already have ProviderFrame/SkcFrame stamped by
// the offset synchronizer, and must be ordered chronologically within each
// period: a neighboring event's frame clamps this event's search window.
type Refiner struct {
	cfg    Config
	store  *tracking.Store
	events []*model.Event
}

// New builds a Refiner over a stamped event list and its tracking store.
func New(store *tracking.Store, events []*model.Event, cfg Config) *Refiner {
	return &Refiner{cfg: cfg, store: store, events: events}
}

// Run refines every eligible event in place. For most providers eligibility
// is event.ToRefine; Impect additionally distinguishes a softer
// force-to-refine rule used when the caller opts out of the provider's
// normal refine policy (applyRefine == false).
func (r *Refiner) Run(eventProvider string, applyRefine bool) {
	for idx, e := range r.events {
		if e.PlayerID == nil {
			continue
		}
		if _, ok := r.store.PlayerIndex(*e.PlayerID); !ok {
			continue
		}
		if eventProvider == "impect" {
			shouldRefine := e.ForceToRefine
			if applyRefine {
				shouldRefine = e.ToRefine
			}
			if !shouldRefine {
				continue
			}
		} else if !e.ToRefine {
			continue
		}
		r.refineEvent(e, idx)
	}
}

func (r *Refiner) frameBefore(idx int) int {
	if idx > 0 {
		return r.events[idx-1].ProviderFrame
	}
	return 0
}

func (r *Refiner) frameAfter(idx int) int {
	if idx < len(r.events)-1 {
		return r.events[idx+1].ProviderFrame
	}
	return r.store.NumFrames()
}

func (r *Refiner) windowBounds(e *model.Event, idx int) (start, end int) {
	before := r.frameBefore(idx)
	after := r.frameAfter(idx)
	offsetRefine := 0
	if e.OffsetRefine != nil {
		offsetRefine = *e.OffsetRefine
	}
	start = max3(0, e.ProviderFrame-offsetRefine, before+1)
	end = min3(e.ProviderFrame+offsetRefine, r.store.NumFrames(), after-1)
	return
}

func (r *Refiner) refineEvent(e *model.Event, idx int) {
	start, end := r.windowBounds(e, idx)
	if end-start < 1 {
		return
	}
	plyIdx, ok := r.store.PlayerIndex(*e.PlayerID)
	if !ok {
		return
	}
	if !r.detectedEnough(start, end, plyIdx) {
		return
	}
	dist, mask, ok := r.maskedDistWindow(start, end, plyIdx)
	if !ok {
		return
	}
	_ = dist
	acc, ok := r.maskedBallAccWindow(start, end, mask)
	if !ok {
		return
	}
	refIdx, ok := refineIndexInWindow(acc, r.cfg.BallAccTH, r.cfg.LocalOffsetFramePast)
	if !ok {
		return
	}
	e.SkcFrame = start + refIdx
}

func (r *Refiner) detectedEnough(start, end, plyIdx int) bool {
	total := end - start
	count := 0
	for f := start; f < end; f++ {
		if r.store.Detected(f, plyIdx) {
			count++
		}
	}
	return float64(count)/float64(total) > r.cfg.IsDetectedTH
}

// maskedDistWindow returns the player-ball distance over the window with
// out-of-reach samples replaced by NaN, and the mask of which samples were
// out of reach (used to also blank the ball-acceleration window). ok is
// false when every sample in the window is out of reach.
func (r *Refiner) maskedDistWindow(start, end, plyIdx int) (dist []float32, mask []bool, ok bool) {
	n := end - start
	dist = make([]float32, n)
	mask = make([]bool, n)
	allMasked := true
	for i := 0; i < n; i++ {
		d := r.store.DistPlyBall(start+i, plyIdx)
		dist[i] = d
		if float64(d) > r.cfg.DistBallTH {
			mask[i] = true
		} else {
			allMasked = false
		}
	}
	if allMasked {
		return nil, nil, false
	}
	nan := float32(math.NaN())
	for i, m := range mask {
		if m {
			dist[i] = nan
		}
	}
	return dist, mask, true
}

// maskedBallAccWindow returns the refine-smoothing ball acceleration over
// the window, blanked wherever the player was out of reach. ok is false
// when no sample survives.
func (r *Refiner) maskedBallAccWindow(start, end int, mask []bool) (acc []float32, ok bool) {
	n := end - start
	acc = make([]float32, n)
	allNaN := true
	for i := 0; i < n; i++ {
		_, _, _, _, accToRefine := r.store.BallKinematics(start + i)
		v := accToRefine
		if mask[i] {
			v = float32(math.NaN())
		}
		acc[i] = v
		if !isNaN32(v) {
			allNaN = false
		}
	}
	if allNaN {
		return nil, false
	}
	return acc, true
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
