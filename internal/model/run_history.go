package model

import "time"

// RunHistory is the persistent log of completed or aborted runs, written
// when a timer is stopped. Live run state itself stays in memory only.
type RunHistory struct {
	ID             int64     `gorm:"autoIncrement" json:"id"`
	TimerID        int64     `gorm:"not null;index;primaryKey" json:"timer_id"`
	StartedAt      time.Time `gorm:"not null" json:"started_at"`
	StoppedAt      time.Time `gorm:"not null;index;primaryKey" json:"stopped_at"`
	ElapsedSeconds int       `gorm:"not null" json:"elapsed_seconds"`
	TotalDuration  int       `gorm:"not null" json:"total_duration"`
	Completed      bool      `gorm:"not null" json:"completed"`
}
