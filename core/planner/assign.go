package planner

import (
	"github.com/pjanik/dayplan/core/model"
)

// AssignTasks fills the work blocks in slots with the best-scoring remaining
// task using the stock scorer. Break, fixed and habit blocks are left
// untouched. The caller's task slice is never mutated; minutes are consumed
// on a working copy so a re-run from the same inputs yields the same plan.
func AssignTasks(slots []model.Block, tasks []model.Task, profile model.EnergyProfile) []model.Block {
	return NewScorer().Assign(slots, tasks, profile)
}

// Assign is AssignTasks with this scorer's weights.
func (s Scorer) Assign(slots []model.Block, tasks []model.Task, profile model.EnergyProfile) []model.Block {
	remaining := model.CloneTasks(tasks)
	workIndex := -1
	for i := range slots {
		if slots[i].Kind != model.KindWork {
			continue
		}
		workIndex++
		if len(remaining) == 0 {
			continue
		}

		energy := profile.At(i)
		cands := unblockedIndexes(remaining)
		if len(cands) == 0 {
			// Dependencies are advisory: rather than stall the day, fall
			// back to the full remaining pool.
			cands = allIndexes(remaining)
		}

		best := -1
		bestScore := 0.0
		for _, ci := range cands {
			sc := s.Score(remaining[ci], workIndex, energy)
			if best == -1 || sc > bestScore {
				best, bestScore = ci, sc
			}
		}

		t := &remaining[best]
		slots[i].TaskID = t.ID
		slots[i].TaskTitle = t.Title
		t.Minutes -= slots[i].Minutes()
		if t.Done() {
			remaining = append(remaining[:best], remaining[best+1:]...)
		}
	}
	return slots
}

// unblockedIndexes returns the tasks whose dependencies have all left the
// remaining pool, i.e. are considered complete.
func unblockedIndexes(remaining []model.Task) []int {
	ids := make(map[string]struct{}, len(remaining))
	for _, t := range remaining {
		ids[t.ID] = struct{}{}
	}
	var out []int
	for i, t := range remaining {
		blocked := false
		for _, dep := range t.DependsOn {
			if _, ok := ids[dep]; ok {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, i)
		}
	}
	return out
}

func allIndexes(remaining []model.Task) []int {
	out := make([]int, len(remaining))
	for i := range remaining {
		out[i] = i
	}
	return out
}
