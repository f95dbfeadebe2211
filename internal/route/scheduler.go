package route

import (
	"sync"
	"time"

	"dccd/internal/taxonomy"
)

// DefaultInterval is the delay between highlight stages.
const DefaultInterval = 240 * time.Millisecond

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// StageEvent reports that the highlight advanced.
type StageEvent struct {
	Generation uint64
	Stage      int
	Final      bool
}

// Scheduler advances a highlight stage from 0 to the route length, one
// stage per interval. Each Start invalidates the previous run before
// arming a new timer, so a run that was replaced or cancelled never
// emits another event.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	clock    Clock

	gen    uint64
	timer  Timer
	events chan StageEvent
	stage  int
	length int
}

// NewScheduler creates a scheduler. A nil clock uses the wall clock and a
// non-positive interval uses DefaultInterval.
func NewScheduler(interval time.Duration, clock Clock) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{interval: interval, clock: clock}
}

// Interval returns the delay between stages.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Token identifies one run of the scheduler.
type Token struct {
	s      *Scheduler
	gen    uint64
	events chan StageEvent
}

// Generation is the run number this token belongs to.
func (t *Token) Generation() uint64 { return t.gen }

// Events delivers the stage transitions of this run in order. The channel
// is closed once the final stage has been sent or the run is cancelled.
func (t *Token) Events() <-chan StageEvent { return t.events }

// Active reports whether the run still has stages pending.
func (t *Token) Active() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.gen == t.gen && t.s.events != nil
}

// Cancel stops the run. It is a no-op when the run already finished or was
// replaced.
func (t *Token) Cancel() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.s.gen == t.gen {
		t.s.cancelLocked()
	}
}

// Start restarts the highlight at stage 0 for seq. The previous run is
// cancelled synchronously before any new timer is armed. An empty
// sequence yields a token whose event channel is already closed.
func (s *Scheduler) Start(seq []taxonomy.Code) *Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen++
	s.stage = 0
	s.length = len(seq)

	events := make(chan StageEvent, len(seq))
	tok := &Token{s: s, gen: s.gen, events: events}
	if len(seq) == 0 {
		close(events)
		return tok
	}

	s.events = events
	s.armLocked(s.gen)
	return tok
}

// Stage returns the current stage of the latest run.
func (s *Scheduler) Stage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Stop cancels whatever run is in flight. The scheduler can be started
// again afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) armLocked(gen uint64) {
	s.timer = s.clock.AfterFunc(s.interval, func() { s.advance(gen) })
}

func (s *Scheduler) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.events == nil {
		return
	}

	s.stage++
	ev := StageEvent{Generation: gen, Stage: s.stage, Final: s.stage >= s.length}
	// Capacity equals the route length, so this send never blocks.
	s.events <- ev

	if ev.Final {
		close(s.events)
		s.events = nil
		s.timer = nil
		return
	}
	s.armLocked(gen)
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.events != nil {
		close(s.events)
		s.events = nil
	}
}
