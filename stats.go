package tide

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
)

// QueryStats holds query execution statistics.
type QueryStats struct {
	TotalQueries atomic.Int64
	TotalExecs   atomic.Int64
	// TotalDuration is in nanoseconds.
	TotalDuration atomic.Int64
	SlowQueries   atomic.Int64
	Errors        atomic.Int64
}

// Snapshot returns the current statistics.
func (s *QueryStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset sets every counter to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time copy of QueryStats.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgDuration returns the average statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a one-line summary.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is called for statements slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsExecutor wraps an Executor with statement statistics.
type StatsExecutor struct {
	Executor
	stats         *QueryStats
	mu            sync.RWMutex
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// StatsOption configures a StatsExecutor.
type StatsOption func(*StatsExecutor)

// WithSlowThreshold sets the slow statement threshold. Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsExecutor) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets the callback for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsExecutor) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to logger.
func WithSlowQueryLog(logger *slog.Logger) StatsOption {
	return WithSlowQueryHook(func(ctx context.Context, query string, args []any, duration time.Duration) {
		logger.WarnContext(ctx, "slow query", "duration", duration, "query", query, "args", args)
	})
}

// NewStatsExecutor wraps db with statistics collection.
//
//	db := tide.NewStatsExecutor(sqlx.MustOpen("sqlite", "app.db"),
//	    tide.WithSlowThreshold(200*time.Millisecond),
//	    tide.WithSlowQueryLog(slog.Default()),
//	)
//	users, err := tide.All[models.User](ctx, db)
//	fmt.Println(db.Stats().Snapshot())
func NewStatsExecutor(db Executor, opts ...StatsOption) *StatsExecutor {
	s := &StatsExecutor{
		Executor:      db,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Executor = (*StatsExecutor)(nil)

// Stats returns the collected statistics.
func (s *StatsExecutor) Stats() *QueryStats {
	return s.stats
}

// SetSlowThreshold updates the slow statement threshold.
func (s *StatsExecutor) SetSlowThreshold(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slowThreshold = d
}

// QueryContext runs a query and records it.
func (s *StatsExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.Executor.QueryContext(ctx, query, args...)
	s.record(ctx, query, args, start, err, true)
	return rows, err
}

// QueryxContext runs a query and records it.
func (s *StatsExecutor) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	start := time.Now()
	rows, err := s.Executor.QueryxContext(ctx, query, args...)
	s.record(ctx, query, args, start, err, true)
	return rows, err
}

// QueryRowxContext runs a single-row query and records it.
func (s *StatsExecutor) QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row {
	start := time.Now()
	row := s.Executor.QueryRowxContext(ctx, query, args...)
	s.record(ctx, query, args, start, row.Err(), true)
	return row
}

// ExecContext runs a statement and records it.
func (s *StatsExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.Executor.ExecContext(ctx, query, args...)
	s.record(ctx, query, args, start, err, false)
	return res, err
}

func (s *StatsExecutor) record(ctx context.Context, query string, args []any, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		s.stats.TotalQueries.Add(1)
	} else {
		s.stats.TotalExecs.Add(1)
	}
	s.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		s.stats.Errors.Add(1)
	}
	s.mu.RLock()
	threshold, hook := s.slowThreshold, s.slowHook
	s.mu.RUnlock()
	if duration > threshold {
		s.stats.SlowQueries.Add(1)
		if hook != nil {
			hook(ctx, query, args, duration)
		}
	}
}
