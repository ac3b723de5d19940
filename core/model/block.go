package model

import (
	"fmt"
	"time"
)

// BlockKind classifies a slot in the generated day plan.
type BlockKind string

const (
	KindWork  BlockKind = "work"
	KindBreak BlockKind = "break"
	KindFixed BlockKind = "fixed"
	KindHabit BlockKind = "habit"
)

// Block is one contiguous interval of the day plan. Work blocks may carry an
// assigned task; habit blocks carry the habit name.
type Block struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Kind      BlockKind `json:"kind"`
	TaskID    string    `json:"task_id,omitempty"`
	TaskTitle string    `json:"task_title,omitempty"`
	Habit     string    `json:"habit,omitempty"`
	Title     string    `json:"title,omitempty"` // fixed appointment title
}

// Duration returns the block length.
func (b Block) Duration() time.Duration { return b.End.Sub(b.Start) }

// Minutes returns the block length in whole minutes.
func (b Block) Minutes() int { return int(b.Duration().Minutes()) }

// FixedBlock is an immovable appointment supplied by the caller.
type FixedBlock struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Title string    `json:"title" yaml:"title"`
}

// Overlaps reports whether the half-open interval [start, end) intersects
// the appointment. Touching boundaries do not overlap.
func (f FixedBlock) Overlaps(start, end time.Time) bool {
	return start.Before(f.End) && end.After(f.Start)
}

// Validate checks the appointment window.
func (f FixedBlock) Validate() error {
	if !f.End.After(f.Start) {
		return fmt.Errorf("fixed block %q: end must be after start", f.Title)
	}
	return nil
}

// Habit is a recurring daily practice. When NeedsBlock is set the planner
// reserves Minutes of work time for it; DailyGoal marks it as a binary
// done/not-done target for history tracking.
type Habit struct {
	Name       string `json:"name" yaml:"name"`
	NeedsBlock bool   `json:"needs_block" yaml:"needs_block"`
	Minutes    int    `json:"minutes,omitempty" yaml:"minutes,omitempty"`
	DailyGoal  bool   `json:"daily_goal" yaml:"daily_goal"`
}

// Validate checks the habit definition.
func (h Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name is required")
	}
	if h.NeedsBlock && h.Minutes <= 0 {
		return fmt.Errorf("habit %q: minutes must be positive when a block is required", h.Name)
	}
	return nil
}
