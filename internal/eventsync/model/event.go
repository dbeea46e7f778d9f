// Package model defines the canonical, provider-independent representation
// of a match event and the coordinate/id conventions shared by every stage
// of the synchronization pipeline.
package model

import (
	"errors"
	"math"
)

// FPS is the fixed tracking frame rate every frame-index computation in this
// module assumes. SkillCorner tracking data is always sampled at 10Hz.
const FPS = 10

// ErrMissingRequiredField names a raw provider event missing a field the
// canonical model requires (id, period, timestamp). The adapters under
// providers/ do not return it: their Standardize methods return no error.
var ErrMissingRequiredField = errors.New("eventsync: missing required field on raw event")

// GenericType buckets a provider's rich event taxonomy down to the three
// categories the synchronizer and refiner care about.
type GenericType string

const (
	Generic GenericType = "generic"
	Pass    GenericType = "pass"
	Shot    GenericType = "shot"
)

// TouchType distinguishes the first contact on the ball in a possession from
// the last. Not every provider reports it.
type TouchType string

const (
	FirstTouch TouchType = "first"
	LastTouch  TouchType = "last"
)

// Coordinate is a pitch-relative (x, y) position in meters, centered on the
// pitch center, or the "unknown" sentinel when the provider didn't report a
// location for the event. Known distinguishes the two cases instead of using
// NaN, so a coordinate can be compared and printed without float tricks.
type Coordinate struct {
	X     float64
	Y     float64
	Known bool
}

// At returns a known coordinate.
func At(x, y float64) Coordinate { return Coordinate{X: x, Y: y, Known: true} }

// Unknown returns the sentinel coordinate used when a provider does not
// report an event location.
func Unknown() Coordinate { return Coordinate{} }

// Event is the canonical, provider-independent representation of a single
// match event (pass, shot, touch, ...). Adapters under providers/ populate
// the fields up to and including OffsetRefine; every field below that line
// is filled in by the synchronization pipeline itself (offset, refine,
// match components).
type Event struct {
	ID       string
	Period   int
	Timestamp float64 // seconds since the provider's period start

	GenericType GenericType
	EventTypeName string
	TouchType     *TouchType

	PlayerID         *int
	ProviderPlayerID *int
	TeamID           *int
	ProviderTeamID   *int

	Location Coordinate

	ToRefine            bool
	ForceToRefine       bool
	IsHead              bool
	IsMatchedApplicable bool
	// OffsetRefine is the half-width, in frames, of the refinement search
	// window around the event's provisional frame. Nil means the event is
	// never refined regardless of ToRefine/ForceToRefine.
	OffsetRefine *int

	// Populated by offset.Synchronizer.
	ProviderFrame int
	// Populated first by offset.Synchronizer (equal to ProviderFrame), then
	// overwritten by refine.Refiner when a better ball-contact frame is found.
	SkcFrame int

	// Populated by match.Matcher.
	IsMatched                  bool
	IsPlayerDetected           bool
	HasProviderPlayerID        bool
	FrameTrackingDataAvailable bool
}

// FrameAt returns the tracking frame index of the event's timestamp given
// the first tracking frame of the event's period.
func (e *Event) FrameAt(periodFirstFrame int) int {
	return periodFirstFrame + int(math.Round(e.Timestamp*FPS))
}
