package planner

import (
	"fmt"
	"time"

	"github.com/pjanik/dayplan/core/model"
)

// Request carries everything a planning run needs. All fields are owned by
// the caller; the run never mutates them.
type Request struct {
	DayStart     time.Time
	DayEnd       time.Time
	BlockMinutes int
	BreakMinutes int
	Tasks        []model.Task
	Habits       []model.Habit
	Fixed        []model.FixedBlock
	Profile      model.EnergyProfile
}

// Plan is the outcome of a planning run.
type Plan struct {
	Blocks []model.Block `json:"blocks"`
	// DroppedHabits lists habits that required a block but fit in no work
	// slot. The original prototype swallowed these silently; callers now
	// get a soft signal.
	DroppedHabits []string  `json:"dropped_habits,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// GeneratePlan builds the day's slots, reserves habit time and assigns
// tasks, using the stock scorer.
func GeneratePlan(req Request) Plan {
	return NewScorer().GeneratePlan(req)
}

// GeneratePlan is the tunable-weights variant.
func (s Scorer) GeneratePlan(req Request) Plan {
	slots := BuildSlots(req.DayStart, req.DayEnd, req.BlockMinutes, req.BreakMinutes, req.Fixed)
	slots, dropped := InsertHabits(slots, req.Habits)
	slots = s.Assign(slots, req.Tasks, req.Profile)
	return Plan{Blocks: slots, DroppedHabits: dropped, GeneratedAt: s.now()}
}

// Window anchors the configured day start and end clocks onto the given
// date.
func (c Config) Window(date time.Time) (time.Time, time.Time, error) {
	start, err := parseClock(c.DayStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("day_start: %w", err)
	}
	end, err := parseClock(c.DayEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("day_end: %w", err)
	}
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return midnight.Add(start), midnight.Add(end), nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
