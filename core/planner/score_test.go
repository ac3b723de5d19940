package planner

import (
	"math"
	"testing"
	"time"

	"github.com/pjanik/dayplan/core/model"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScoreNoDeadlineBaseline(t *testing.T) {
	s := testScorer()
	tk := model.Task{Title: "t", Minutes: 90, Priority: 2, Energy: model.EnergyMedium}
	got := s.Score(tk, 5, model.EnergyMedium)
	// prio 2.0*1.6 + urgency 0.8*1.1 + fit 1.2*1.0 + short 1.0*0.5 + morning 1.0*0.4
	want := 2.0*1.6 + 0.8*1.1 + 1.2*1.0 + 1.0*0.5 + 1.0*0.4
	if !almostEqual(got, want) {
		t.Fatalf("score = %f, want %f", got, want)
	}
}

func TestScoreDeadlineUrgency(t *testing.T) {
	s := testScorer()
	in2days := day(8, 0).AddDate(0, 0, 2)
	tk := model.Task{Title: "t", Minutes: 90, Priority: 2, Deadline: &in2days}
	got := s.Score(tk, 5, model.EnergyMedium)
	// urgency = 4 - 2/2 = 3
	want := 2.0*1.6 + 3.0*1.1 + 1.2*1.0 + 1.0*0.5 + 1.0*0.4
	if !almostEqual(got, want) {
		t.Fatalf("score = %f, want %f", got, want)
	}
}

func TestScoreOverdueUncapped(t *testing.T) {
	// Overdue deadlines exceed 4.0 and are intentionally not clamped above.
	s := testScorer()
	overdue := day(8, 0).AddDate(0, 0, -4)
	tk := model.Task{Title: "t", Minutes: 90, Priority: 3, Deadline: &overdue}
	got := s.Score(tk, 5, model.EnergyMedium)
	// urgency = 4 - (-4)/2 = 6
	want := 1.0*1.6 + 6.0*1.1 + 1.2*1.0 + 1.0*0.5 + 1.0*0.4
	if !almostEqual(got, want) {
		t.Fatalf("score = %f, want %f", got, want)
	}
}

func TestScoreFarDeadlineFloorsAtZero(t *testing.T) {
	s := testScorer()
	far := day(8, 0).AddDate(0, 0, 30)
	tk := model.Task{Title: "t", Minutes: 90, Priority: 2, Deadline: &far}
	got := s.Score(tk, 5, model.EnergyMedium)
	want := 2.0*1.6 + 0.0*1.1 + 1.2*1.0 + 1.0*0.5 + 1.0*0.4
	if !almostEqual(got, want) {
		t.Fatalf("score = %f, want %f", got, want)
	}
}

func TestScoreEnergyFit(t *testing.T) {
	s := testScorer()
	demanding := model.Task{Title: "t", Minutes: 90, Priority: 2, Energy: model.EnergyHigh}
	easy := model.Task{Title: "t", Minutes: 90, Priority: 2, Energy: model.EnergyLow}
	// A low-energy slot penalizes the demanding task, fits the easy one.
	if s.Score(demanding, 5, model.EnergyLow) >= s.Score(easy, 5, model.EnergyLow) {
		t.Fatalf("energy misfit should score lower")
	}
	// A high-energy slot accommodates both.
	d := s.Score(demanding, 5, model.EnergyHigh)
	e := s.Score(easy, 5, model.EnergyHigh)
	if !almostEqual(d, e) {
		t.Fatalf("both fit the high slot, scores should match: %f vs %f", d, e)
	}
}

func TestScoreShortTaskBonus(t *testing.T) {
	s := testScorer()
	short := model.Task{Title: "t", Minutes: 60, Priority: 2}
	long := model.Task{Title: "t", Minutes: 61, Priority: 2}
	diff := s.Score(short, 5, model.EnergyMedium) - s.Score(long, 5, model.EnergyMedium)
	if !almostEqual(diff, 0.2*0.5) {
		t.Fatalf("short-task bonus delta = %f", diff)
	}
}

func TestScoreMorningBoost(t *testing.T) {
	s := testScorer()
	p1 := model.Task{Title: "t", Minutes: 90, Priority: 1}
	morning := s.Score(p1, 2, model.EnergyMedium)
	afternoon := s.Score(p1, 3, model.EnergyMedium)
	if !almostEqual(morning-afternoon, 0.15*0.4) {
		t.Fatalf("morning boost delta = %f", morning-afternoon)
	}
	// No boost for lower priority.
	p2 := model.Task{Title: "t", Minutes: 90, Priority: 2}
	if !almostEqual(s.Score(p2, 0, model.EnergyMedium), s.Score(p2, 9, model.EnergyMedium)) {
		t.Fatalf("P2 tasks should see no morning boost")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 3, 23, 59, 0, 0, time.UTC)
	deadline := time.Date(2025, 3, 4, 0, 1, 0, 0, time.UTC)
	// Calendar-day distance, not 24h buckets.
	if got := daysUntil(now, deadline); got != 1 {
		t.Fatalf("daysUntil = %d, want 1", got)
	}
	if got := daysUntil(deadline, now); got != -1 {
		t.Fatalf("daysUntil = %d, want -1", got)
	}
}

func TestLegacyScoreStillMultiplicative(t *testing.T) {
	// The superseded prototype formula is kept verbatim for comparison.
	now := day(8, 0)
	tk := model.Task{Title: "t", Minutes: 90, Priority: 1, Energy: model.EnergyHigh}
	got := legacyScore(tk, 0, model.EnergyHigh, now)
	// prio 3.0 * fit 1.5 * earlyBias 1.2 + urg 0.5
	if !almostEqual(got, 3.0*1.5*1.2+0.5) {
		t.Fatalf("legacy score = %f", got)
	}
	// Early bias floors at 0.7.
	deep := legacyScore(tk, 40, model.EnergyHigh, now)
	if !almostEqual(deep, 3.0*1.5*0.7+0.5) {
		t.Fatalf("legacy late-slot score = %f", deep)
	}
}
