package planner

import (
	"sort"
	"time"

	"github.com/pjanik/dayplan/core/model"
)

// BuildSlots walks the day from start to end and returns the ordered block
// sequence: work blocks at the configured cadence, breaks in between and
// fixed appointments spliced in where they collide with the cadence.
//
// The result covers [dayStart, dayEnd) contiguously with two exceptions: a
// fixed block reaching past dayEnd is emitted in full, not clipped, and an
// appointment starting inside a break overlaps it, since breaks are emitted
// without collision checks.
func BuildSlots(dayStart, dayEnd time.Time, blockMinutes, breakMinutes int, fixed []model.FixedBlock) []model.Block {
	var slots []model.Block
	if !dayStart.Before(dayEnd) {
		return slots
	}

	sorted := append([]model.FixedBlock(nil), fixed...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	cursor := dayStart
	for cursor.Before(dayEnd) {
		tentativeEnd := cursor.Add(time.Duration(blockMinutes) * time.Minute)
		if tentativeEnd.After(dayEnd) {
			tentativeEnd = dayEnd
		}

		// Earliest colliding appointment wins; later ones are handled once
		// the cursor reaches them.
		if fb, ok := firstCollision(sorted, cursor, tentativeEnd); ok {
			slots = append(slots, model.Block{Start: fb.Start, End: fb.End, Kind: model.KindFixed, Title: fb.Title})
			cursor = fb.End
			continue
		}

		slots = append(slots, model.Block{Start: cursor, End: tentativeEnd, Kind: model.KindWork})
		cursor = tentativeEnd

		if breakMinutes > 0 && cursor.Before(dayEnd) {
			breakEnd := cursor.Add(time.Duration(breakMinutes) * time.Minute)
			if breakEnd.After(dayEnd) {
				breakEnd = dayEnd
			}
			slots = append(slots, model.Block{Start: cursor, End: breakEnd, Kind: model.KindBreak})
			cursor = breakEnd
		}
	}
	return slots
}

func firstCollision(sorted []model.FixedBlock, start, end time.Time) (model.FixedBlock, bool) {
	for _, fb := range sorted {
		if fb.Overlaps(start, end) {
			return fb, true
		}
	}
	return model.FixedBlock{}, false
}

// InsertHabits reserves time for each habit that requires a block. A habit
// takes the start of the first unassigned work block long enough to hold it;
// the work block is truncated to begin where the habit ends. Habits that fit
// nowhere are left out of the plan and reported in the returned list.
func InsertHabits(slots []model.Block, habits []model.Habit) ([]model.Block, []string) {
	var dropped []string
	for _, h := range habits {
		if !h.NeedsBlock {
			continue
		}
		placed := false
		for i := 0; i < len(slots); i++ {
			s := slots[i]
			if s.Kind != model.KindWork || s.TaskID != "" {
				continue
			}
			if s.Minutes() < h.Minutes {
				continue
			}
			habitEnd := s.Start.Add(time.Duration(h.Minutes) * time.Minute)
			hb := model.Block{Start: s.Start, End: habitEnd, Kind: model.KindHabit, Habit: h.Name}
			if habitEnd.Before(s.End) {
				slots[i].Start = habitEnd
				slots = append(slots[:i], append([]model.Block{hb}, slots[i:]...)...)
			} else {
				// The habit consumes the whole work block.
				slots[i] = hb
			}
			placed = true
			break
		}
		if !placed {
			dropped = append(dropped, h.Name)
		}
	}
	return slots, dropped
}
