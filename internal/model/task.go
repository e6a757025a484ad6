package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and display format of a task due date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDueDate  = errors.New("model: invalid task due date")
	ErrTitleRequired   = errors.New("model: task title is required")
	ErrInvalidID       = errors.New("model: task id must be positive")
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Next cycles High -> Medium -> Low -> High. Anything else starts at High.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "low", "l":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

func ParseDueDate(raw string) (time.Time, error) {
	due, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, raw)
	}
	return due, nil
}

type Task struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	DueDate  string   `json:"dueDate"`
	Status   bool     `json:"status"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	return t.FormData().Validate()
}

func (t Task) FormData() TaskFormData {
	return TaskFormData{
		Title:    t.Title,
		Priority: t.Priority,
		DueDate:  t.DueDate,
		Status:   t.Status,
	}
}

func (t Task) StatusLabel() string {
	if t.Status {
		return "Completed"
	}
	return "Not Completed"
}

// TaskFormData is the mutable part of a Task, as submitted by the form.
type TaskFormData struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	DueDate  string   `json:"dueDate"`
	Status   bool     `json:"status"`
}

func (f TaskFormData) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	if !f.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, f.Priority)
	}
	if _, err := ParseDueDate(f.DueDate); err != nil {
		return err
	}
	return nil
}

func (f TaskFormData) WithID(id int) Task {
	return Task{
		ID:       id,
		Title:    f.Title,
		Priority: f.Priority,
		DueDate:  f.DueDate,
		Status:   f.Status,
	}
}

// TaskPatch carries the fields of a partial update. Nil means "not part of the patch".
type TaskPatch struct {
	Title    *string   `json:"title,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	DueDate  *string   `json:"dueDate,omitempty"`
	Status   *bool     `json:"status,omitempty"`
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Priority == nil && p.DueDate == nil && p.Status == nil
}

// Apply returns t with every field present in p overwritten.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// Fields lists the json names of the fields present in p.
func (p TaskPatch) Fields() []string {
	out := make([]string, 0, 4)
	if p.Title != nil {
		out = append(out, "title")
	}
	if p.Priority != nil {
		out = append(out, "priority")
	}
	if p.DueDate != nil {
		out = append(out, "dueDate")
	}
	if p.Status != nil {
		out = append(out, "status")
	}
	return out
}

// Diff builds the patch that turns prev into next, holding only changed fields.
func Diff(prev Task, next TaskFormData) TaskPatch {
	var p TaskPatch
	if prev.Title != next.Title {
		title := next.Title
		p.Title = &title
	}
	if prev.Priority != next.Priority {
		priority := next.Priority
		p.Priority = &priority
	}
	if prev.DueDate != next.DueDate {
		due := next.DueDate
		p.DueDate = &due
	}
	if prev.Status != next.Status {
		status := next.Status
		p.Status = &status
	}
	return p
}
