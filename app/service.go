package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiplan "github.com/pjanik/dayplan/api/plan"
	"github.com/pjanik/dayplan/config"
	"github.com/pjanik/dayplan/core/history"
	coremetrics "github.com/pjanik/dayplan/core/metrics"
	"github.com/pjanik/dayplan/core/model"
	"github.com/pjanik/dayplan/core/planner"
	"github.com/pjanik/dayplan/infra/logger"
	"github.com/pjanik/dayplan/infra/metrics"
	"github.com/pjanik/dayplan/infra/store"
	"github.com/pjanik/dayplan/internal/eventbus"
)

// PlanEvent is published on the internal bus after every planning run.
type PlanEvent struct {
	Result  coremetrics.PlanResult
	Dropped []string
}

// Service wires the planner, history tracking, metrics sinks and HTTP API.
type Service struct {
	cfg     *config.Config
	log     logger.Logger
	scorer  planner.Scorer
	sink    coremetrics.Sink
	bus     *eventbus.Bus[PlanEvent]
	tracker *history.Tracker
	store   store.HistoryStore
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	st, err := store.NewJSONLStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	tracker := history.NewTracker()
	recs, err := st.Query(context.Background(), store.Query{})
	if err != nil {
		return nil, fmt.Errorf("history load: %w", err)
	}
	for _, r := range recs {
		tracker.Record(r)
	}

	svc := &Service{
		cfg:     cfg,
		log:     logg,
		scorer:  planner.NewScorer(),
		sink:    sink,
		bus:     eventbus.New[PlanEvent](),
		tracker: tracker,
		store:   st,
	}
	return svc, nil
}

// Plan runs the planner over the request, records history and metrics and
// publishes a PlanEvent.
func (s *Service) Plan(req planner.Request) planner.Plan {
	started := time.Now()
	result := s.scorer.GeneratePlan(req)
	res := summarize(result, req, time.Since(started))

	if err := s.sink.RecordPlanResult(res); err != nil {
		s.log.Errorf("record plan metrics: %v", err)
	}
	for _, h := range result.DroppedHabits {
		s.log.Warnf("habit %q fits in no work slot, dropped from plan", h)
	}

	rec := history.Summarize(req.DayStart, result.Blocks)
	s.tracker.Record(rec)
	if err := s.store.Append(context.Background(), rec); err != nil {
		s.log.Errorf("persist day record: %v", err)
	}

	s.bus.Publish(PlanEvent{Result: res, Dropped: result.DroppedHabits})
	return result
}

// Lookback reports over the last days ending at asOf.
func (s *Service) Lookback(asOf time.Time, days int) history.Report {
	return s.tracker.Lookback(asOf, days)
}

// Events exposes the plan event stream.
func (s *Service) Events() <-chan PlanEvent { return s.bus.Subscribe() }

// Run serves the API and metrics endpoints until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	events := s.bus.Subscribe()
	go func() {
		for ev := range events {
			s.log.Debugw("plan event", map[string]any{
				"blocks":   ev.Result.Blocks,
				"assigned": ev.Result.AssignedSlots,
				"dropped":  len(ev.Dropped),
			})
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/api/plan", apiplan.NewPlanHandler(s.cfg.Planner, s, s.cfg.API.Token, s.log))
	mux.Handle("/api/history", apiplan.NewHistoryHandler(s.cfg.History.LookbackDays, s, s.cfg.API.Token, s.log))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	s.log.Infof("serving API on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return s.store.Close()
}

func summarize(p planner.Plan, req planner.Request, elapsed time.Duration) coremetrics.PlanResult {
	res := coremetrics.PlanResult{
		Blocks:      len(p.Blocks),
		GeneratedAt: p.GeneratedAt,
		Elapsed:     elapsed,
	}
	for _, b := range p.Blocks {
		switch b.Kind {
		case model.KindWork:
			res.WorkBlocks++
			res.WorkMinutes += b.Minutes()
			if b.TaskID != "" {
				res.AssignedSlots++
			}
		case model.KindHabit:
			res.HabitsPlaced++
		}
	}
	res.HabitsDropped = len(p.DroppedHabits)
	return res
}
