package run

import "time"

// Step is one segment of a timer program: a fixed per-repetition duration
// and how many times it repeats. Steps are captured at Start and never
// modified afterwards; editing the stored timer definition does not affect
// a run already in progress.
type Step struct {
	Index           int
	DurationSeconds int
	Repetitions     int
}

// State represents the lifecycle state of a run.
type State string

const (
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateStopped  State = "stopped"
	StateFinished State = "finished"
)

// Record is a point-in-time snapshot of a run. All derived fields
// (TimeInTimer, CurrentStepIndex, CurrentRepetition, TimeInStep) are
// recomputed from the wall clock on every operation, so a Record is
// consistent with the instant it was produced.
type Record struct {
	TimerID   int64
	State     State
	Steps     []Step
	StartedAt time.Time

	// TotalDuration is the programmed length of the whole run in seconds,
	// fixed at Start.
	TotalDuration int

	// TimeInTimer is the active elapsed time in whole seconds: wall-clock
	// time since start minus all paused time.
	TimeInTimer int

	CurrentStepIndex  int
	CurrentRepetition int
	TimeInStep        int
}
