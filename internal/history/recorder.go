package history

import (
	"context"
	"log"

	"interval-timer-backend/internal/model"
	"interval-timer-backend/internal/store"
)

// Recorder manages a pool of workers that persist finished runs. Writes
// happen off the request path so that stopping a timer never waits on
// the database.
type Recorder struct {
	size  int
	jobs  chan model.RunHistory
	store store.Store
}

// NewRecorder creates a recorder with the given number of workers.
func NewRecorder(size int, s store.Store) *Recorder {
	return &Recorder{
		size:  size,
		jobs:  make(chan model.RunHistory, size*4), // Buffered channel
		store: s,
	}
}

// Start launches the worker goroutines.
func (r *Recorder) Start(ctx context.Context) {
	for i := 0; i < r.size; i++ {
		go r.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (r *Recorder) worker(ctx context.Context, id int) {
	log.Printf("History worker %d started", id)
	for {
		select {
		case entry := <-r.jobs:
			if err := r.store.RecordRun(ctx, &entry); err != nil {
				log.Printf("Error recording run for timer %d: %v", entry.TimerID, err)
			}
		case <-ctx.Done():
			log.Printf("History worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a run for persistence. It never blocks the caller:
// when the queue is full the entry is dropped and logged.
func (r *Recorder) Dispatch(entry model.RunHistory) {
	select {
	case r.jobs <- entry:
	default:
		log.Printf("History queue full, dropping run for timer %d", entry.TimerID)
	}
}

// Jobs returns the jobs channel for testing.
func (r *Recorder) Jobs() chan model.RunHistory {
	return r.jobs
}
