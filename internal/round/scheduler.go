package round

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"digitdraw/internal/metrics"
	"digitdraw/pkg/realtime"
)

// Event is published to live subscribers after a visible state change.
type Event string

const (
	EventReveal Event = "reveal"
	EventRecord Event = "record"
)

// Options configures a Scheduler. Zero values select defaults.
type Options struct {
	Policy  Policy
	Clock   Clock
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Hub     *realtime.Broadcaster[Event]
}

// Scheduler advances rounds on the wall clock: it feeds the second of
// minute to Next and carries out the returned actions against the Store.
type Scheduler struct {
	mu       sync.Mutex
	phase    Phase
	lastTick time.Time

	policy  Policy
	gen     *Generator
	store   *Store
	clock   Clock
	cadence realtime.Cadence
	loop    *realtime.Loop[Event]
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewScheduler wires a scheduler around gen and store.
func NewScheduler(gen *Generator, store *Store, opts Options) *Scheduler {
	if opts.Policy == (Policy{}) {
		opts.Policy = ThreePhase
	}
	if opts.Clock == nil {
		opts.Clock = ISTClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Hub == nil {
		opts.Hub = realtime.NewBroadcaster[Event]()
	}
	return &Scheduler{
		policy:  opts.Policy,
		gen:     gen,
		store:   store,
		clock:   opts.Clock,
		cadence: realtime.SecondsPerMinute,
		loop:    realtime.NewLoop(opts.Hub, opts.Clock.Now),
		log:     opts.Logger.Named("scheduler"),
		metrics: opts.Metrics,
	}
}

// Policy returns the reveal policy in use.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// Phase returns the machine phase after the last tick.
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Running reports whether Run is active.
func (s *Scheduler) Running() bool {
	return s.loop.Running()
}

// Run ticks once per second, aligned to the wall-clock second, until ctx is
// cancelled. A stalled process simply misses the seconds it slept through.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler started",
		zap.String("policy", s.policy.Name),
		zap.Int("generate_at", s.policy.GenerateAt),
		zap.Int("reveal_at", s.policy.RevealAt),
		zap.Int("record_at", s.policy.RecordAt),
	)
	err := s.loop.Run(ctx, func(now time.Time) (time.Time, []Event, bool) {
		return s.cadence.NextWake(now), s.Tick(now), false
	})
	s.log.Info("scheduler stopped", zap.Error(err))
	return err
}

// Tick applies one second of the schedule at now and returns the events to
// publish. A repeat of the last processed second is ignored. When the clock
// steps backward the machine restarts from idle, so the round in flight is
// dropped and the next generate second starts a fresh one.
func (s *Scheduler) Tick(now time.Time) []Event {
	local := Local(now)
	second := local.Truncate(time.Second)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastTick.IsZero() {
		if second.Equal(s.lastTick) {
			return nil
		}
		if second.Before(s.lastTick) {
			s.log.Warn("clock stepped backward",
				zap.Time("from", s.lastTick),
				zap.Time("to", second),
			)
			s.phase = PhaseIdle
		}
	}
	s.lastTick = second

	phase, actions := Next(s.phase, s.cadence.Offset(local), s.policy)
	s.phase = phase

	var events []Event
	for _, a := range actions {
		switch a {
		case ActionGenerate:
			s.generate(local)
		case ActionReveal:
			if s.reveal() {
				events = append(events, EventReveal)
			}
		case ActionRecord:
			if s.record() {
				events = append(events, EventRecord)
			}
		}
	}
	return events
}

func (s *Scheduler) generate(now time.Time) {
	pd := ComputePeriod(now)
	r := s.gen.Generate(pd.Period, pd.RoundIndex, now)
	s.store.SetPending(r)
	s.metrics.RoundsGenerated.Inc()
	// digit stays out of the logs until reveal
	s.log.Debug("round generated",
		zap.String("period", r.Period),
		zap.Int("round_index", pd.RoundIndex),
	)
}

func (s *Scheduler) reveal() bool {
	r, ok := s.store.Reveal()
	if !ok {
		return false
	}
	s.metrics.RoundsRevealed.Inc()
	s.log.Info("round revealed",
		zap.String("period", r.Period),
		zap.Int("number", r.Number),
	)
	return true
}

func (s *Scheduler) record() bool {
	r, ok := s.store.Record()
	if !ok {
		if r.Period != "" {
			s.log.Warn("round already recorded", zap.String("period", r.Period))
		}
		return false
	}
	n := len(s.store.History())
	s.metrics.RoundsRecorded.Inc()
	s.metrics.HistoryLength.Set(float64(n))
	s.log.Info("round recorded",
		zap.String("period", r.Period),
		zap.Int("history", n),
	)
	return true
}
