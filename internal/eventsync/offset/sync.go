package offset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/skillcorner/event-sync/internal/eventsync/model"
	"github.com/skillcorner/event-sync/internal/eventsync/tracking"
)

// Synchronizer infers the per-period tracking-frame offset of a match's
// event stream and stamps every event's ProviderFrame/SkcFrame accordingly.
type Synchronizer struct {
	cfg    Config
	store  *tracking.Store
	events []*model.Event
}

// New builds a Synchronizer over a packed tracking store and the events to
// stamp. Events are mutated in place by SyncPeriod/SyncAll.
func New(store *tracking.Store, events []*model.Event, cfg Config) *Synchronizer {
	return &Synchronizer{cfg: cfg, store: store, events: events}
}

// SyncAll runs SyncPeriod for every requested period and returns the
// resulting refined start frame per period.
func (s *Synchronizer) SyncAll(periods []int) map[int]int {
	out := make(map[int]int, len(periods))
	for _, p := range periods {
		out[p] = s.SyncPeriod(p)
	}
	return out
}

// SyncPeriod estimates the refined period-start frame for one period and
// stamps ProviderFrame/SkcFrame on every event of that period.
func (s *Synchronizer) SyncPeriod(period int) int {
	coarse := s.coarseEstimate(period)
	refined := s.fineRefine(period, coarse)
	for _, e := range s.events {
		if e.Period != period {
			continue
		}
		frame := e.FrameAt(refined)
		e.ProviderFrame = frame
		e.SkcFrame = frame
	}
	return refined
}

// isCloseToBall returns a dense nbFrames*nbPlayers indicator, 1 where a
// player is within ThDistPlyBall of the ball, 0 otherwise (including where
// the distance is unknown).
func (s *Synchronizer) isCloseToBall() []float64 {
	nbF, nbP := s.store.NumFrames(), s.store.NumPlayers()
	out := make([]float64, nbF*nbP)
	for f := 0; f < nbF; f++ {
		for p := 0; p < nbP; p++ {
			d := s.store.DistPlyBall(f, p)
			if !isNaN32(d) && float64(d) < s.cfg.ThDistPlyBall {
				out[f*nbP+p] = 1
			}
		}
	}
	return out
}

// coarseEstimate cross-correlates, per qualifying player, that player's
// ball-possession indicator against their pass-event histogram and takes
// the median of the per-player argmax offsets. Falls back to the period's
// configured default start when no player has enough passes to contribute.
func (s *Synchronizer) coarseEstimate(period int) int {
	close := s.isCloseToBall()
	nbF, nbP := s.store.NumFrames(), s.store.NumPlayers()
	defaultStart := s.cfg.DefaultStart[period]
	minPass := s.cfg.MinPassPerPeriod[period]

	framesByPlayer := map[int][]int{}
	for _, e := range s.events {
		if e.Period != period || e.GenericType != model.Pass || e.PlayerID == nil {
			continue
		}
		if _, ok := s.store.PlayerIndex(*e.PlayerID); !ok {
			continue
		}
		framesByPlayer[*e.PlayerID] = append(framesByPlayer[*e.PlayerID], e.FrameAt(defaultStart))
	}

	var estimates []float64
	for pid, idx := range s.store.PlayerIDToIndex() {
		frames := framesByPlayer[pid]
		if len(frames) <= minPass {
			continue
		}
		counts := bincount(frames)
		if defaultStart >= len(counts) {
			continue
		}
		counts = counts[defaultStart:]
		if nbF <= defaultStart {
			continue
		}

		closeSeries := make([]float64, nbF-defaultStart)
		for f := defaultStart; f < nbF; f++ {
			closeSeries[f-defaultStart] = close[f*nbP+idx]
		}

		conv := fftConvolveFull(closeSeries, reversed(counts))
		if len(conv) == 0 {
			continue
		}
		offset := argmax(conv) - len(counts) + 1
		estimates = append(estimates, float64(offset+defaultStart))
	}

	if len(estimates) == 0 {
		return defaultStart
	}
	sort.Float64s(estimates)
	return int(stat.Quantile(0.5, stat.LinInterp, estimates, nil))
}

type matchedPass struct {
	frame int
	event *model.Event
}

// matchedPasses finds, for each pass event of the period, the last frame in
// a window around its estimated event frame where the player was within
// ThDistPlyBall of the ball.
func (s *Synchronizer) matchedPasses(period, estimatedStart int) []matchedPass {
	so := s.cfg.SearchOffset
	nbF := s.store.NumFrames()
	var out []matchedPass
	for _, e := range s.events {
		if e.Period != period || e.GenericType != model.Pass || e.PlayerID == nil {
			continue
		}
		idx, ok := s.store.PlayerIndex(*e.PlayerID)
		if !ok {
			continue
		}
		eventFrame := e.FrameAt(estimatedStart)
		start, end := eventFrame-so, eventFrame+so
		if start < 0 {
			start = 0
		}
		if end > nbF {
			end = nbF
		}
		if end <= start {
			continue
		}
		lastOffset := -1
		for f := start; f < end; f++ {
			d := s.store.DistPlyBall(f, idx)
			if !isNaN32(d) && float64(d) < s.cfg.ThDistPlyBall {
				lastOffset = f - start
			}
		}
		if lastOffset >= 0 {
			out = append(out, matchedPass{frame: start + lastOffset, event: e})
		}
	}
	return out
}

// fineRefine scans candidate period-start frames around the coarse
// estimate and picks the one minimizing the mean absolute deviation between
// each matched pass's observed possession frame and its event frame at that
// candidate. The result carries the dataset's empirical -1 bias correction:
// the reference implementation consistently estimates one frame late.
func (s *Synchronizer) fineRefine(period, estimatedStart int) int {
	matched := s.matchedPasses(period, estimatedStart)
	if len(matched) == 0 {
		return estimatedStart
	}

	lo := estimatedStart - s.cfg.SearchOffset
	hi := estimatedStart + s.cfg.SearchOffset

	best := lo
	bestDeviation := math.Inf(1)
	found := false
	for candidate := lo; candidate < hi; candidate++ {
		var sum float64
		for _, mp := range matched {
			sum += math.Abs(float64(mp.frame - mp.event.FrameAt(candidate)))
		}
		mean := sum / float64(len(matched))
		if mean < bestDeviation {
			bestDeviation = mean
			best = candidate
			found = true
		}
	}
	if !found {
		return estimatedStart
	}
	return best - 1
}

func isNaN32(v float32) bool { return v != v }
