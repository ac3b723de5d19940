package history

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pjanik/dayplan/core/model"
)

// DayRecord aggregates one day's executed plan. It is derived from the block
// sequence alone; the planner itself never writes history.
type DayRecord struct {
	Date         time.Time       `json:"date"`
	WorkMinutes  int             `json:"work_minutes"`
	BreakMinutes int             `json:"break_minutes"`
	HabitMinutes int             `json:"habit_minutes"`
	FixedMinutes int             `json:"fixed_minutes"`
	Habits       map[string]bool `json:"habits,omitempty"` // habit name -> done
}

// Summarize folds a block sequence into a DayRecord for the given date.
// Habit blocks mark their habit as done; goal habits the caller tracks
// outside the plan can be merged in afterwards.
func Summarize(date time.Time, blocks []model.Block) DayRecord {
	rec := DayRecord{Date: truncateDay(date), Habits: make(map[string]bool)}
	for _, b := range blocks {
		switch b.Kind {
		case model.KindWork:
			rec.WorkMinutes += b.Minutes()
		case model.KindBreak:
			rec.BreakMinutes += b.Minutes()
		case model.KindFixed:
			rec.FixedMinutes += b.Minutes()
		case model.KindHabit:
			rec.HabitMinutes += b.Minutes()
			rec.Habits[b.Habit] = true
		}
	}
	return rec
}

// Tracker keeps an in-memory day-by-day log. It is owned by the caller; the
// planner never touches it. Safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	records map[time.Time]DayRecord
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{records: make(map[time.Time]DayRecord)}
}

// Record stores or replaces the record for its date.
func (tr *Tracker) Record(rec DayRecord) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.records[truncateDay(rec.Date)] = rec
}

// MarkHabit sets a habit's done flag for the given day, creating the day
// record when absent.
func (tr *Tracker) MarkHabit(date time.Time, habit string, done bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	day := truncateDay(date)
	rec, ok := tr.records[day]
	if !ok {
		rec = DayRecord{Date: day, Habits: make(map[string]bool)}
	}
	if rec.Habits == nil {
		rec.Habits = make(map[string]bool)
	}
	rec.Habits[habit] = done
	tr.records[day] = rec
}

// Streak returns the number of consecutive days ending at the given date on
// which the habit was done.
func (tr *Tracker) Streak(habit string, asOf time.Time) int {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.streakLocked(habit, asOf)
}

func (tr *Tracker) streakLocked(habit string, asOf time.Time) int {
	day := truncateDay(asOf)
	n := 0
	for {
		rec, ok := tr.records[day]
		if !ok || !rec.Habits[habit] {
			return n
		}
		n++
		day = day.AddDate(0, 0, -1)
	}
}

// Report covers a lookback window of recorded days.
type Report struct {
	Days            []DayRecord    `json:"days"`
	MeanWorkMinutes float64        `json:"mean_work_minutes"`
	Streaks         map[string]int `json:"streaks,omitempty"`
}

// Lookback builds a report over the last n days ending at asOf. Days with no
// record are skipped; the mean covers recorded days only.
func (tr *Tracker) Lookback(asOf time.Time, n int) Report {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	end := truncateDay(asOf)
	var days []DayRecord
	habits := make(map[string]struct{})
	for i := 0; i < n; i++ {
		if rec, ok := tr.records[end.AddDate(0, 0, -i)]; ok {
			days = append(days, rec)
			for h := range rec.Habits {
				habits[h] = struct{}{}
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	work := make([]float64, len(days))
	for i, d := range days {
		work[i] = float64(d.WorkMinutes)
	}
	rep := Report{Days: days}
	if len(work) > 0 {
		rep.MeanWorkMinutes = stat.Mean(work, nil)
	}
	if len(habits) > 0 {
		rep.Streaks = make(map[string]int, len(habits))
		for h := range habits {
			rep.Streaks[h] = tr.streakLocked(h, asOf)
		}
	}
	return rep
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
