package tracking

import (
	"math"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
)

// Smoothing widths and physical-criterion constants, in frames/SI units.
// These come from the dataset the synchronizer was calibrated against and
// must not be rounded or "cleaned up" - changing them changes which samples
// get masked out.
const (
	smoothingSpeed       = 2
	smoothingAcc         = 8
	smoothingAccToRefine = 2
	impossibleSpeedTH    = 10.5 // m/s
)

func (s *Store) computeKinematics() {
	s.plySpeed, s.plyVX, s.plyVY = diffVectorNorm(s.positions, s.nbFrames, s.nbPlayers, smoothingSpeed)
	s.plyAcc = diffScalar(s.plySpeed, s.nbFrames, s.nbPlayers, smoothingAcc)
	applyPhysicalCriterion(s.plySpeed, s.plyVX, s.plyVY, s.plyAcc)

	ballXY := make([]float32, s.nbFrames*2)
	for f := 0; f < s.nbFrames; f++ {
		ballXY[f*2], ballXY[f*2+1] = s.ball[f*3], s.ball[f*3+1]
	}
	ballSpeed, ballVX, ballVY := diffVectorNorm(ballXY, s.nbFrames, 1, smoothingSpeed)
	s.ballSpeed, s.ballVX, s.ballVY = ballSpeed, ballVX, ballVY
	s.ballAcc = diffScalar(s.ballSpeed, s.nbFrames, 1, smoothingAcc)
	s.ballAccToRefine = diffScalar(s.ballSpeed, s.nbFrames, 1, smoothingAccToRefine)
}

// diffVectorNorm computes the central-difference speed norm and velocity
// components of a (frame, player, 2) position array over a window of
// `window` frames, symmetrically NaN-padded by window/2 frames on each
// side. window must be even (2 and 8 are the only values this module uses).
func diffVectorNorm(pos []float32, nbFrames, nbPlayers, window int) (speedNorm, vx, vy []float32) {
	nan := float32(math.NaN())
	speedNorm = fill(make([]float32, nbFrames*nbPlayers), nan)
	vx = fill(make([]float32, nbFrames*nbPlayers), nan)
	vy = fill(make([]float32, nbFrames*nbPlayers), nan)

	pad := window / 2
	scale := float32(window) / float32(model.FPS)
	for p := 0; p < nbPlayers; p++ {
		for j := pad; j < nbFrames-pad; j++ {
			f0 := j - pad
			f1 := f0 + window
			i0 := (f0*nbPlayers + p) * 2
			i1 := (f1*nbPlayers + p) * 2
			dx := (pos[i1] - pos[i0]) / scale
			dy := (pos[i1+1] - pos[i0+1]) / scale
			out := j*nbPlayers + p
			vx[out] = dx
			vy[out] = dy
			speedNorm[out] = float32(math.Hypot(float64(dx), float64(dy)))
		}
	}
	return
}

// diffScalar computes the central-difference derivative of a (frame,
// player) scalar array over `window` frames, symmetrically NaN-padded.
func diffScalar(values []float32, nbFrames, nbPlayers, window int) []float32 {
	nan := float32(math.NaN())
	out := fill(make([]float32, nbFrames*nbPlayers), nan)

	pad := window / 2
	scale := float32(window) / float32(model.FPS)
	for p := 0; p < nbPlayers; p++ {
		for j := pad; j < nbFrames-pad; j++ {
			f0 := j - pad
			f1 := f0 + window
			v0 := values[f0*nbPlayers+p]
			v1 := values[f1*nbPlayers+p]
			out[j*nbPlayers+p] = (v1 - v0) / scale
		}
	}
	return out
}

// applyPhysicalCriterion masks out player kinematic samples that are not
// physically plausible for a human sprinter: speed above impossibleSpeedTH,
// or an acceleration too high for the measured speed per the linear
// speed/acceleration envelope -0.6354*speed + 9.1. Never applied to the
// ball, which can move far faster than any player.
func applyPhysicalCriterion(speed, vx, vy, acc []float32) {
	for i := range speed {
		s, a := speed[i], acc[i]
		criterion := -0.6354*s + 9.1 - a
		if criterion <= 0 || s > impossibleSpeedTH {
			nan := float32(math.NaN())
			speed[i], vx[i], vy[i], acc[i] = nan, nan, nan, nan
		}
	}
}
