package planner

import (
	"time"

	"github.com/pjanik/dayplan/core/model"
)

// Scorer rates how attractive a task is for a work slot. The score is a
// weighted sum of five terms: priority, deadline urgency, energy fit, a
// short-task bonus and a morning boost for top-priority work. Weights can be
// tuned per instance; NewScorer returns the stock weighting.
type Scorer struct {
	PriorityWeight float64
	UrgencyWeight  float64
	EnergyWeight   float64
	ShortWeight    float64
	MorningWeight  float64

	// Now supplies the reference time for deadline urgency. Defaults to
	// time.Now when nil.
	Now func() time.Time
}

// NewScorer returns a scorer with the stock weights.
func NewScorer() Scorer {
	return Scorer{
		PriorityWeight: 1.6,
		UrgencyWeight:  1.1,
		EnergyWeight:   1.0,
		ShortWeight:    0.5,
		MorningWeight:  0.4,
	}
}

// Score computes the weighted sum for a task. workIndex is the ordinal of
// the slot among work slots only; slotEnergy is the level the profile
// predicts for the slot.
func (s Scorer) Score(t model.Task, workIndex int, slotEnergy model.Energy) float64 {
	prio := priorityTerm(t.Priority)

	urgency := 0.8
	if t.Deadline != nil {
		days := daysUntil(s.now(), *t.Deadline)
		urgency = 4.0 - float64(days)/2
		// Overdue deadlines push past 4.0 on purpose; only the low side
		// is clamped.
		if urgency < 0 {
			urgency = 0
		}
	}

	fit := 0.6
	if t.Energy.Rank() <= slotEnergy.Rank() {
		fit = 1.2
	}

	short := 1.0
	if t.Minutes <= 60 {
		short = 1.2
	}

	morning := 1.0
	if workIndex <= 2 && t.Priority == 1 {
		morning = 1.15
	}

	return prio*s.PriorityWeight +
		urgency*s.UrgencyWeight +
		fit*s.EnergyWeight +
		short*s.ShortWeight +
		morning*s.MorningWeight
}

func (s Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func priorityTerm(p int) float64 {
	switch p {
	case 1:
		return 3.0
	case 2:
		return 2.0
	default:
		return 1.0
	}
}

// daysUntil returns the calendar-day distance from now to the deadline,
// negative when the deadline has passed.
func daysUntil(now, deadline time.Time) int {
	ny, nm, nd := now.Date()
	dy, dm, dd := deadline.Date()
	a := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	b := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// legacyScore is the original multiplicative formula from the first
// prototype.
//
// Deprecated: superseded by Scorer's weighted sum. Kept for reference and
// regression comparison; never selected by the assigner.
func legacyScore(t model.Task, slotIndex int, slotEnergy model.Energy, now time.Time) float64 {
	prio := priorityTerm(t.Priority)

	urg := 0.5
	if t.Deadline != nil {
		urg = 3.0 - float64(daysUntil(now, *t.Deadline))/2
		if urg < 0 {
			urg = 0
		}
	}

	fit := 1.0
	switch {
	case slotEnergy == t.Energy:
		fit = 1.5
	case slotEnergy == model.EnergyLow && t.Energy == model.EnergyHigh:
		fit = 0.7
	case slotEnergy == model.EnergyHigh && t.Energy == model.EnergyLow:
		fit = 0.8
	}

	earlyBias := 1.2 - float64(slotIndex)*0.03
	if earlyBias < 0.7 {
		earlyBias = 0.7
	}

	return prio*fit*earlyBias + urg
}
