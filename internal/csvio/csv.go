package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"interval-timer-backend/internal/model"
)

// header is the column layout of an exported timer. Import matches
// columns by name, so files with reordered columns still parse.
var header = []string{
	"timer_name",
	"timer_description",
	"step_order",
	"step_title",
	"duration_seconds",
	"repetitions",
	"notes",
}

// Export renders a timer as CSV: one header row, then one row per step
// in programmed order. The timer's name and description repeat on every
// row so that each row is self-contained.
func Export(timer *model.Timer) ([]byte, error) {
	steps := append([]model.TimerStep(nil), timer.Steps...)
	sort.Slice(steps, func(i, j int) bool { return steps[i].OrderIndex < steps[j].OrderIndex })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, step := range steps {
		row := []string{
			timer.Name,
			timer.Description,
			strconv.Itoa(step.OrderIndex),
			step.Title,
			strconv.Itoa(step.DurationSeconds),
			strconv.Itoa(step.Repetitions),
			step.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Import parses CSV content into an unsaved timer. Error messages are
// meant for API callers and state exactly what is wrong with the file.
func Import(data []byte) (*model.Timer, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Invalid CSV format: %v", err)
	}
	if len(records) < 2 {
		return nil, errors.New("CSV file is empty")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	first := records[1]
	timer := &model.Timer{
		Name:        field(first, "timer_name"),
		Description: field(first, "timer_description"),
	}
	if timer.Name == "" {
		return nil, errors.New("Timer name is required")
	}

	for _, row := range records[1:] {
		// Rows without any step content carry only the timer columns.
		if field(row, "step_title") == "" && field(row, "duration_seconds") == "" {
			continue
		}
		step, err := parseStep(row, field)
		if err != nil {
			return nil, fmt.Errorf("Invalid step data: %v", err)
		}
		timer.Steps = append(timer.Steps, step)
	}
	if len(timer.Steps) == 0 {
		return nil, errors.New("At least one timer step is required")
	}

	return timer, nil
}

func parseStep(row []string, field func([]string, string) string) (model.TimerStep, error) {
	title := field(row, "step_title")
	if title == "" {
		return model.TimerStep{}, errors.New("step title is required")
	}

	duration, err := strconv.Atoi(field(row, "duration_seconds"))
	if err != nil {
		return model.TimerStep{}, err
	}
	if duration < 1 {
		return model.TimerStep{}, fmt.Errorf("duration_seconds must be at least 1, got %d", duration)
	}

	repetitions := 1
	if raw := field(row, "repetitions"); raw != "" {
		repetitions, err = strconv.Atoi(raw)
		if err != nil {
			return model.TimerStep{}, err
		}
	}
	if repetitions < 1 {
		return model.TimerStep{}, fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}

	order := 0
	if raw := field(row, "step_order"); raw != "" {
		order, err = strconv.Atoi(raw)
		if err != nil {
			return model.TimerStep{}, err
		}
	}
	if order < 0 {
		return model.TimerStep{}, fmt.Errorf("step_order must not be negative, got %d", order)
	}

	return model.TimerStep{
		OrderIndex:      order,
		Title:           title,
		DurationSeconds: duration,
		Repetitions:     repetitions,
		Notes:           field(row, "notes"),
	}, nil
}
