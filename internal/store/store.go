package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"interval-timer-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	ListTimers(ctx context.Context, offset, limit int) ([]model.Timer, error)
	GetTimer(ctx context.Context, id int64) (*model.Timer, error)
	CreateTimer(ctx context.Context, timer *model.Timer) error
	UpdateTimer(ctx context.Context, timer *model.Timer) error
	DeleteTimer(ctx context.Context, id int64) error
	AddStep(ctx context.Context, step *model.TimerStep) error
	DeleteStep(ctx context.Context, timerID, stepID int64) error
	RecordRun(ctx context.Context, entry *model.RunHistory) error
	ListRuns(ctx context.Context, timerID int64, limit int) ([]model.RunHistory, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for collaborators that need raw
// access, such as the history recorder.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// withSteps preloads a timer's steps in their programmed order.
func withSteps(db *gorm.DB) *gorm.DB {
	return db.Preload("Steps", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index ASC")
	})
}

// ListTimers returns a page of timers with their steps.
func (s *gormStore) ListTimers(ctx context.Context, offset, limit int) ([]model.Timer, error) {
	timers := make([]model.Timer, 0)
	err := withSteps(s.db.WithContext(ctx)).
		Offset(offset).
		Limit(limit).
		Order("id ASC").
		Find(&timers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}
	for i := range timers {
		if timers[i].Steps == nil {
			timers[i].Steps = make([]model.TimerStep, 0)
		}
	}
	return timers, nil
}

// GetTimer returns a single timer with its steps. A missing timer surfaces
// as gorm.ErrRecordNotFound.
func (s *gormStore) GetTimer(ctx context.Context, id int64) (*model.Timer, error) {
	var timer model.Timer
	if err := withSteps(s.db.WithContext(ctx)).First(&timer, id).Error; err != nil {
		return nil, err
	}
	if timer.Steps == nil {
		timer.Steps = make([]model.TimerStep, 0)
	}
	return &timer, nil
}

// CreateTimer persists a new timer together with its steps.
func (s *gormStore) CreateTimer(ctx context.Context, timer *model.Timer) error {
	if err := s.db.WithContext(ctx).Create(timer).Error; err != nil {
		return fmt.Errorf("failed to create timer: %w", err)
	}
	return nil
}

// UpdateTimer updates a timer's name and description. Steps are managed
// through AddStep/DeleteStep and left untouched here.
func (s *gormStore) UpdateTimer(ctx context.Context, timer *model.Timer) error {
	res := s.db.WithContext(ctx).
		Model(&model.Timer{}).
		Where("id = ?", timer.ID).
		Updates(map[string]any{
			"name":        timer.Name,
			"description": timer.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update timer %d: %w", timer.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTimer removes a timer along with its steps and run history.
func (s *gormStore) DeleteTimer(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Timer{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete timer %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("timer_id = ?", id).Delete(&model.TimerStep{}).Error; err != nil {
			return fmt.Errorf("failed to delete steps for timer %d: %w", id, err)
		}
		if err := tx.Where("timer_id = ?", id).Delete(&model.RunHistory{}).Error; err != nil {
			return fmt.Errorf("failed to delete run history for timer %d: %w", id, err)
		}
		return nil
	})
}

// AddStep appends a step to an existing timer. The timer must exist;
// otherwise gorm.ErrRecordNotFound is returned.
func (s *gormStore) AddStep(ctx context.Context, step *model.TimerStep) error {
	if err := s.db.WithContext(ctx).Select("id").First(&model.Timer{}, step.TimerID).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(step).Error; err != nil {
		return fmt.Errorf("failed to create step for timer %d: %w", step.TimerID, err)
	}
	return nil
}

// DeleteStep removes one step, scoped to its timer so a step cannot be
// deleted through another timer's URL.
func (s *gormStore) DeleteStep(ctx context.Context, timerID, stepID int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND timer_id = ?", stepID, timerID).
		Delete(&model.TimerStep{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete step %d: %w", stepID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordRun appends one run history entry.
func (s *gormStore) RecordRun(ctx context.Context, entry *model.RunHistory) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record run for timer %d: %w", entry.TimerID, err)
	}
	return nil
}

// ListRuns returns the most recent run history entries for a timer,
// newest first.
func (s *gormStore) ListRuns(ctx context.Context, timerID int64, limit int) ([]model.RunHistory, error) {
	entries := make([]model.RunHistory, 0)
	err := s.db.WithContext(ctx).
		Where("timer_id = ?", timerID).
		Order("stopped_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for timer %d: %w", timerID, err)
	}
	return entries, nil
}
