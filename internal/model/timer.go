package model

import "time"

// Timer represents a stored interval timer definition.
type Timer struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Steps []TimerStep `gorm:"foreignKey:TimerID;constraint:OnDelete:CASCADE" json:"steps"`
}

// TimerStep represents one ordered segment of a timer: a title, a
// per-repetition duration and how many times it repeats.
type TimerStep struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	TimerID         int64  `gorm:"index;not null" json:"timer_id"`
	OrderIndex      int    `gorm:"not null" json:"order_index"`
	Title           string `gorm:"size:255;not null" json:"title"`
	DurationSeconds int    `gorm:"not null" json:"duration_seconds"`
	Repetitions     int    `gorm:"not null;default:1" json:"repetitions"`
	Notes           string `gorm:"type:text" json:"notes"`
}
