package plan

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjanik/dayplan/core/history"
	"github.com/pjanik/dayplan/core/model"
	"github.com/pjanik/dayplan/core/planner"
	"github.com/pjanik/dayplan/infra/logger"
)

type fakeService struct {
	lastReq  planner.Request
	lastDays int
}

func (f *fakeService) Plan(req planner.Request) planner.Plan {
	f.lastReq = req
	return planner.GeneratePlan(req)
}

func (f *fakeService) Lookback(_ time.Time, days int) history.Report {
	f.lastDays = days
	return history.Report{MeanWorkMinutes: 42}
}

func defaults() planner.Config {
	c := planner.Config{}
	c.SetDefaults()
	return c
}

func TestPlanHandlerHappyPath(t *testing.T) {
	svc := &fakeService{}
	h := NewPlanHandler(defaults(), svc, "", logger.NopLogger{})

	body := `{
		"date": "2025-03-03",
		"day_start": "09:00", "day_end": "11:00",
		"block_minutes": 50, "break_minutes": 10,
		"tasks": [{"title": "Deep work", "minutes": 90, "priority": 1, "energy": "high"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result planner.Plan
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.NotEmpty(t, result.Blocks)
	assert.Equal(t, 50, svc.lastReq.BlockMinutes)
	// Tasks passed through get an identifier assigned.
	require.Len(t, svc.lastReq.Tasks, 1)
	assert.NotEmpty(t, svc.lastReq.Tasks[0].ID)

	var work *model.Block
	for i := range result.Blocks {
		if result.Blocks[i].Kind == model.KindWork {
			work = &result.Blocks[i]
			break
		}
	}
	require.NotNil(t, work)
	assert.Equal(t, "Deep work", work.TaskTitle)
}

func TestPlanHandlerDefaultsApplied(t *testing.T) {
	svc := &fakeService{}
	h := NewPlanHandler(defaults(), svc, "", logger.NopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"tasks":[]}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 50, svc.lastReq.BlockMinutes)
	assert.Equal(t, 10, svc.lastReq.BreakMinutes)
}

func TestPlanHandlerExplicitZeroBreak(t *testing.T) {
	svc := &fakeService{}
	h := NewPlanHandler(defaults(), svc, "", logger.NopLogger{})

	body := `{
		"date": "2025-03-03",
		"day_start": "09:00", "day_end": "11:00",
		"break_minutes": 0,
		"tasks": []
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 0, svc.lastReq.BreakMinutes)

	var result planner.Plan
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	for _, b := range result.Blocks {
		assert.NotEqual(t, model.KindBreak, b.Kind)
	}
}

func TestPlanHandlerRejects(t *testing.T) {
	svc := &fakeService{}
	h := NewPlanHandler(defaults(), svc, "", logger.NopLogger{})

	cases := []struct {
		name string
		body string
		code int
	}{
		{"bad json", "{", http.StatusBadRequest},
		{"bad date", `{"date":"03/03/2025","tasks":[]}`, http.StatusBadRequest},
		{"bad task", `{"tasks":[{"title":"x","minutes":0,"priority":2}]}`, http.StatusBadRequest},
		{"bad habit", `{"tasks":[],"habits":[{"name":"run","needs_block":true}]}`, http.StatusBadRequest},
		{"bad clock", `{"day_start":"late","tasks":[]}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(c.body))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, c.code, rr.Code, c.name)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPlanHandlerAuth(t *testing.T) {
	svc := &fakeService{}
	h := NewPlanHandler(defaults(), svc, "s3cret", logger.NopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"tasks":[]}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"tasks":[]}`))
	req.Header.Set("Authorization", "Bearer s3cret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHistoryHandler(t *testing.T) {
	svc := &fakeService{}
	h := NewHistoryHandler(7, svc, "", logger.NopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 7, svc.lastDays)

	var rep history.Report
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&rep))
	assert.Equal(t, 42.0, rep.MeanWorkMinutes)

	req = httptest.NewRequest(http.MethodGet, "/api/history?days=30", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 30, svc.lastDays)

	req = httptest.NewRequest(http.MethodGet, "/api/history?days=-1", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/history", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
