package plan

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pjanik/dayplan/core/history"
	"github.com/pjanik/dayplan/core/logger"
	"github.com/pjanik/dayplan/core/model"
	"github.com/pjanik/dayplan/core/planner"
)

// Service is the planning facade the handlers call.
type Service interface {
	Plan(req planner.Request) planner.Plan
	Lookback(asOf time.Time, days int) history.Report
}

// Request is the session payload the UI collaborator sends. Day window and
// cadence fall back to the configured defaults when omitted. BreakMinutes is
// a pointer so an explicit zero (no breaks) is distinguishable from absent.
type Request struct {
	Date          string             `json:"date,omitempty"` // YYYY-MM-DD, default today
	DayStart      string             `json:"day_start,omitempty"`
	DayEnd        string             `json:"day_end,omitempty"`
	BlockMinutes  int                `json:"block_minutes,omitempty"`
	BreakMinutes  *int               `json:"break_minutes,omitempty"`
	EnergyProfile []model.Energy     `json:"energy_profile,omitempty"`
	Tasks         []model.Task       `json:"tasks"`
	Habits        []model.Habit      `json:"habits,omitempty"`
	FixedBlocks   []model.FixedBlock `json:"fixed_blocks,omitempty"`
}

// NewPlanHandler returns an HTTP handler serving POST /api/plan. Requests
// must include an Authorization header with "Bearer <token>" when token is
// non-empty.
func NewPlanHandler(defaults planner.Config, svc Service, token string, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		preq, err := buildRequest(defaults, req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result := svc.Plan(preq)
		log.Debugw("plan generated", map[string]any{
			"blocks":  len(result.Blocks),
			"dropped": len(result.DroppedHabits),
		})
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// NewHistoryHandler returns an HTTP handler serving GET /api/history with an
// optional ?days=N lookback override.
func NewHistoryHandler(defaultDays int, svc Service, token string, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		days := defaultDays
		if s := r.URL.Query().Get("days"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v <= 0 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = v
		}
		rep := svc.Lookback(time.Now(), days)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rep); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func authorized(r *http.Request, token string) bool {
	if token == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+token
}

func buildRequest(defaults planner.Config, req Request) (planner.Request, error) {
	cfg := defaults
	if req.DayStart != "" {
		cfg.DayStart = req.DayStart
	}
	if req.DayEnd != "" {
		cfg.DayEnd = req.DayEnd
	}
	if req.BlockMinutes > 0 {
		cfg.BlockMinutes = req.BlockMinutes
	}
	if req.BreakMinutes != nil {
		cfg.BreakMinutes = *req.BreakMinutes
	}
	if err := cfg.Validate(); err != nil {
		return planner.Request{}, err
	}

	date := time.Now()
	if req.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			return planner.Request{}, err
		}
		date = d
	}
	start, end, err := cfg.Window(date)
	if err != nil {
		return planner.Request{}, err
	}

	tasks := make([]model.Task, len(req.Tasks))
	copy(tasks, req.Tasks)
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return planner.Request{}, err
		}
		tasks[i].EnsureID()
	}
	for _, h := range req.Habits {
		if err := h.Validate(); err != nil {
			return planner.Request{}, err
		}
	}
	for _, f := range req.FixedBlocks {
		if err := f.Validate(); err != nil {
			return planner.Request{}, err
		}
	}

	return planner.Request{
		DayStart:     start,
		DayEnd:       end,
		BlockMinutes: cfg.BlockMinutes,
		BreakMinutes: cfg.BreakMinutes,
		Tasks:        tasks,
		Habits:       req.Habits,
		Fixed:        req.FixedBlocks,
		Profile:      model.EnergyProfile(req.EnergyProfile),
	}, nil
}
