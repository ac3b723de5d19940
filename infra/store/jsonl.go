package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pjanik/dayplan/core/history"
)

// HistoryStore persists day records for the lookback report.
type HistoryStore interface {
	Append(ctx context.Context, rec history.DayRecord) error
	Query(ctx context.Context, q Query) ([]history.DayRecord, error)
	Close() error
}

// Query selects day records by date range. Zero bounds are open.
type Query struct {
	Start time.Time
	End   time.Time
}

// JSONLStore keeps day records in an append-only JSONL file, one record per
// line. Later records for the same date supersede earlier ones at query
// time.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the backing file when missing.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes the record to the end of the file.
func (s *JSONLStore) Append(_ context.Context, rec history.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(rec)
}

// Query returns the effective record per day within the range, in file
// order. Malformed lines are skipped.
func (s *JSONLStore) Query(_ context.Context, q Query) ([]history.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	latest := make(map[time.Time]int)
	var res []history.DayRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r history.DayRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if !q.Start.IsZero() && r.Date.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && r.Date.After(q.End) {
			continue
		}
		if i, ok := latest[r.Date]; ok {
			res[i] = r
			continue
		}
		latest[r.Date] = len(res)
		res = append(res, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close is a no-op for the file-per-call store.
func (s *JSONLStore) Close() error { return nil }
