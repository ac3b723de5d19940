package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work competing for the day's work blocks. Minutes is the
// remaining duration and decreases as the task is scheduled; a task is
// complete once Minutes reaches zero or below.
type Task struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Minutes   int        `json:"minutes" yaml:"minutes"`
	Priority  int        `json:"priority" yaml:"priority"` // 1 = highest, 3 = lowest
	Energy    Energy     `json:"energy" yaml:"energy"`
	Deadline  *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	DependsOn []string   `json:"depends_on,omitempty" yaml:"depends_on,omitempty"` // task IDs that must complete first
	Tags      []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Project   string     `json:"project,omitempty" yaml:"project,omitempty"`
	URL       string     `json:"url,omitempty" yaml:"url,omitempty"`
	Subtasks  []Subtask  `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
}

// Subtask is a checklist entry below a task. It does not take part in
// scheduling.
type Subtask struct {
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

// EnsureID assigns a generated identifier when none is set. Titles remain
// display text only.
func (t *Task) EnsureID() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
}

// Done reports whether the task has been fully scheduled.
func (t Task) Done() bool { return t.Minutes <= 0 }

// Clone returns a deep copy so a planning run can consume minutes without
// touching the caller's record.
func (t Task) Clone() Task {
	cp := t
	if t.Deadline != nil {
		d := *t.Deadline
		cp.Deadline = &d
	}
	cp.DependsOn = append([]string(nil), t.DependsOn...)
	cp.Tags = append([]string(nil), t.Tags...)
	cp.Subtasks = append([]Subtask(nil), t.Subtasks...)
	return cp
}

// Validate checks that the task is sound enough to schedule. The planner
// itself assumes validated input; this is for the API boundary.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.Minutes <= 0 {
		return fmt.Errorf("task %q: minutes must be positive", t.Title)
	}
	if t.Priority < 1 || t.Priority > 3 {
		return fmt.Errorf("task %q: priority must be 1..3", t.Title)
	}
	if t.Energy != "" && !t.Energy.Valid() {
		return fmt.Errorf("task %q: unknown energy %q", t.Title, t.Energy)
	}
	return nil
}

// CloneTasks deep-copies a task list, assigning identifiers where missing.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		c := t.Clone()
		c.EnsureID()
		out = append(out, c)
	}
	return out
}
