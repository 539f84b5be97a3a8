package run

import (
	"sync"
	"time"
)

// record is the mutable state of one run. All access goes through the
// Runtime mutex.
type record struct {
	timerID     int64
	state       State
	steps       []Step
	startedAt   time.Time
	pausedAt    time.Time // set only while state == StatePaused
	totalPaused time.Duration

	totalDuration     int
	timeInTimer       int
	currentStepIndex  int
	currentRepetition int
	timeInStep        int
}

// Runtime tracks the live run of each timer in memory. There is no
// background ticking: progress is derived from the wall clock whenever a
// run is observed, so an idle Runtime costs nothing. Restarting the
// process discards all runs.
type Runtime struct {
	mu     sync.Mutex
	timers map[int64]*record
	now    func() time.Time
}

// New creates a Runtime with no registered runs.
func New() *Runtime {
	return &Runtime{
		timers: make(map[int64]*record),
		now:    time.Now,
	}
}

// Start begins a new run for timerID from the supplied steps, replacing
// any previous run for the same timer regardless of its state. A timer
// with no steps finishes immediately.
func (rt *Runtime) Start(timerID int64, steps []Step) Record {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rec := &record{
		timerID:       timerID,
		state:         StateRunning,
		steps:         append([]Step(nil), steps...),
		startedAt:     rt.now(),
		totalDuration: totalDuration(steps),
	}
	rec.refresh(rt.now())
	rt.timers[timerID] = rec
	return rec.snapshot()
}

// Pause freezes a running timer. It reports false when no run exists for
// timerID or the run is not currently running.
func (rt *Runtime) Pause(timerID int64) (Record, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rec, ok := rt.timers[timerID]
	if !ok || rec.state != StateRunning {
		return Record{}, false
	}
	rec.state = StatePaused
	rec.pausedAt = rt.now()
	rec.refresh(rt.now())
	return rec.snapshot(), true
}

// Resume continues a paused timer. The pause interval is added to the
// run's paused total so elapsed time picks up exactly where it stopped.
// It reports false when no run exists or the run is not paused.
func (rt *Runtime) Resume(timerID int64) (Record, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rec, ok := rt.timers[timerID]
	if !ok || rec.state != StatePaused {
		return Record{}, false
	}
	rec.totalPaused += rt.now().Sub(rec.pausedAt)
	rec.pausedAt = time.Time{}
	rec.state = StateRunning
	rec.refresh(rt.now())
	return rec.snapshot(), true
}

// Stop ends a run from any state, including one that already finished
// naturally. Progress is computed one last time and then frozen; stopping
// an already stopped run returns the frozen values unchanged. It reports
// false only when no run exists for timerID.
func (rt *Runtime) Stop(timerID int64) (Record, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rec, ok := rt.timers[timerID]
	if !ok {
		return Record{}, false
	}
	if rec.state != StateStopped {
		rec.apply(rec.activeElapsed(rt.now()))
		rec.state = StateStopped
	}
	return rec.snapshot(), true
}

// Status reports the current state of a run, recomputing progress first.
// It reports false when no run exists for timerID.
func (rt *Runtime) Status(timerID int64) (Record, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rec, ok := rt.timers[timerID]
	if !ok {
		return Record{}, false
	}
	rec.refresh(rt.now())
	return rec.snapshot(), true
}

// Remove drops the run for timerID, if any. Used when the timer itself is
// deleted.
func (rt *Runtime) Remove(timerID int64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	delete(rt.timers, timerID)
}

// activeElapsed returns the run's active elapsed time in whole seconds at
// instant now. Paused runs measure up to the pause instant, so the value
// stays constant for as long as the pause lasts.
func (r *record) activeElapsed(now time.Time) int {
	switch r.state {
	case StatePaused:
		return int((r.pausedAt.Sub(r.startedAt) - r.totalPaused) / time.Second)
	case StateFinished:
		return r.timeInTimer
	default:
		return int((now.Sub(r.startedAt) - r.totalPaused) / time.Second)
	}
}

// refresh recomputes the derived fields from the clock. Stopped runs are
// frozen and never touched again.
func (r *record) refresh(now time.Time) {
	if r.state == StateStopped {
		return
	}
	r.apply(r.activeElapsed(now))
}

// apply maps an active elapsed value onto the derived fields, flipping the
// run to StateFinished once the programmed duration is exhausted. Finished
// runs report the final step at its last repetition with elapsed clamped
// to the total, so the numbers never run past the end of the program.
func (r *record) apply(elapsed int) {
	if elapsed >= r.totalDuration {
		r.state = StateFinished
		r.timeInTimer = r.totalDuration
		if n := len(r.steps); n > 0 {
			last := r.steps[n-1]
			r.currentStepIndex = n - 1
			r.currentRepetition = last.Repetitions
			r.timeInStep = last.DurationSeconds
		} else {
			r.currentStepIndex = 0
			r.currentRepetition = 0
			r.timeInStep = 0
		}
		return
	}
	r.timeInTimer = elapsed
	r.currentStepIndex, r.currentRepetition, r.timeInStep = locate(elapsed, r.steps)
}

func (r *record) snapshot() Record {
	return Record{
		TimerID:           r.timerID,
		State:             r.state,
		Steps:             r.steps,
		StartedAt:         r.startedAt,
		TotalDuration:     r.totalDuration,
		TimeInTimer:       r.timeInTimer,
		CurrentStepIndex:  r.currentStepIndex,
		CurrentRepetition: r.currentRepetition,
		TimeInStep:        r.timeInStep,
	}
}
