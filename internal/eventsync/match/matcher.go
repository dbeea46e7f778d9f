// Package match flags whether each event's stamped frame actually lines up
// with the tracking data: is the event's player within reach of the ball
// around that frame, were they detected, is there tracking data at all.
package match

import (
	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

// Config holds the matching thresholds.
type Config struct {
	// ThIsMatched is the max player-ball distance, in meters, that counts
	// as a match within the search window.
	ThIsMatched float64
	// Offset is the half-width, in frames, of the match search window
	// around an event's SkcFrame.
	Offset int
	// NanDist substitutes for an unknown distance sample so it never
	// satisfies ThIsMatched.
	NanDist float64
}

// DefaultConfig returns the reference implementation's matching thresholds.
func DefaultConfig() Config {
	return Config{ThIsMatched: 3.5, Offset: 5, NanDist: 100.0}
}

// Matcher stamps IsMatched/IsPlayerDetected/HasProviderPlayerID/
// FrameTrackingDataAvailable on every event.
type Matcher struct {
	cfg    Config
	store  *tracking.Store
	events []*model.Event
}

// New builds a Matcher over a tracking store and the events to flag. Events
// should already have SkcFrame stamped.
func New(store *tracking.Store, events []*model.Event, cfg Config) *Matcher {
	return &Matcher{cfg: cfg, store: store, events: events}
}

// Run flags every event in place.
func (m *Matcher) Run() {
	for _, e := range m.events {
		var plyIdx int
		var ok bool
		if e.PlayerID != nil {
			plyIdx, ok = m.store.PlayerIndex(*e.PlayerID)
		}
		if !ok {
			e.IsMatched = false
			e.IsPlayerDetected = false
			e.HasProviderPlayerID = e.ProviderPlayerID != nil
			e.FrameTrackingDataAvailable = m.frameTrackingAvailable(e)
			continue
		}
		e.IsMatched = m.isMatched(e, plyIdx)
		e.IsPlayerDetected = m.isPlayerDetected(e, plyIdx)
		e.HasProviderPlayerID = true
		e.FrameTrackingDataAvailable = m.frameTrackingAvailable(e)
	}
}

func (m *Matcher) isMatched(e *model.Event, plyIdx int) bool {
	nbF := m.store.NumFrames()
	start := e.SkcFrame - m.cfg.Offset
	if start < 0 {
		start = 0
	}
	end := e.SkcFrame + m.cfg.Offset
	if end > nbF {
		end = nbF
	}
	for f := start; f < end; f++ {
		d := float64(m.store.DistPlyBall(f, plyIdx))
		if d != d { // NaN
			d = m.cfg.NanDist
		}
		if d <= m.cfg.ThIsMatched {
			return true
		}
	}
	return false
}

func (m *Matcher) isPlayerDetected(e *model.Event, plyIdx int) bool {
	if e.SkcFrame < 0 || e.SkcFrame >= m.store.NumFrames() {
		return false
	}
	return m.store.Detected(e.SkcFrame, plyIdx)
}

func (m *Matcher) frameTrackingAvailable(e *model.Event) bool {
	if e.SkcFrame < 0 || e.SkcFrame >= m.store.NumFrames() {
		return false
	}
	for p := 0; p < m.store.NumPlayers(); p++ {
		if _, _, ok := m.store.Position(e.SkcFrame, p); ok {
			return true
		}
	}
	return false
}
