// Package planner implements single-day time-block planning. BuildSlots
// partitions the day into work, break and fixed blocks, InsertHabits
// reserves time for recurring habits, and Assign fills work blocks with the
// best-scoring task using a weighted greedy strategy.
package planner
