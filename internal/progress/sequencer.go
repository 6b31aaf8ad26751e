// Package progress drives the staged status line shown while a pipeline
// request is in flight. Stage advancement is time-based: the remote
// service reports nothing until it returns, so the sequencer simulates
// forward motion and the real completion event settles it.
package progress

import (
	"sync"
	"time"
)

// VerifyStages are the pipeline stages shown during a verification
// request, in execution order.
var VerifyStages = []string{
	"Scanning markets",
	"Locating sources",
	"Extracting values",
	"Computing edge",
	"Ranking trades",
}

// State is the lifecycle of one sequenced run.
type State int

const (
	// Idle means no run has started since construction or Reset.
	Idle State = iota
	// Running means a run is in flight and a stage label is showing.
	Running
	// Settled means the last run finished; the outcome is final.
	Settled
)

// Snapshot is an immutable view of the sequencer for rendering.
type Snapshot struct {
	State State
	// Step is the current stage index. While Running it stays within
	// [0, len(Stages)-1]. After a successful Finish it equals
	// len(Stages), the conventional "all stages complete" position.
	Step    int
	Stages  []string
	Success bool
}

// Label returns the stage text for the current step, or "" when no
// stage is showing.
func (s Snapshot) Label() string {
	if s.State != Running || s.Step >= len(s.Stages) {
		return ""
	}
	return s.Stages[s.Step]
}

// Sequencer advances through a fixed stage list on a timer. Starting a
// new run cancels the previous run's ticker, so overlapping requests
// can never interleave stage updates.
type Sequencer struct {
	mu      sync.Mutex
	stages  []string
	step    int
	state   State
	success bool
	cancel  chan struct{}
	tick    func()
}

// NewSequencer creates a sequencer over the given stages. onTick, if
// non-nil, is called after every automatic advance so the owner can
// repaint; it runs on the ticker goroutine.
func NewSequencer(stages []string, onTick func()) *Sequencer {
	return &Sequencer{stages: stages, tick: onTick}
}

// Start begins a new run at step 0 and advances one stage per interval
// until the last stage, where it holds. Any previous run's ticker is
// cancelled first.
func (s *Sequencer) Start(interval time.Duration) {
	s.mu.Lock()
	s.stopLocked()

	s.state = Running
	s.step = 0
	s.success = false

	cancel := make(chan struct{})
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(interval, cancel)
}

func (s *Sequencer) run(interval time.Duration, cancel chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if !s.advance(cancel) {
				return
			}
			if s.tick != nil {
				s.tick()
			}
		}
	}
}

// advance moves one stage forward, clamping at the final stage. It
// reports false once this run's ticker should stop.
func (s *Sequencer) advance(cancel chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A new run may have started while the tick was in flight.
	if s.cancel != cancel || s.state != Running {
		return false
	}
	if s.step < len(s.stages)-1 {
		s.step++
	}
	return true
}

// Finish settles the current run. On success the step jumps to
// len(stages), marking every stage complete regardless of how far the
// timer got; on failure the step freezes where it was.
func (s *Sequencer) Finish(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.state = Settled
	s.success = success
	if success {
		s.step = len(s.stages)
	}
}

// Reset returns the sequencer to Idle, cancelling any active run.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.state = Idle
	s.step = 0
	s.success = false
}

// Snapshot returns the current state for rendering.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		State:   s.state,
		Step:    s.step,
		Stages:  s.stages,
		Success: s.success,
	}
}

func (s *Sequencer) stopLocked() {
	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
}
