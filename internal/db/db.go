// Package db owns the shared Postgres handle and the query instrumentation
// around it. Every storage operation in the application runs through
// Execute, which times the call, feeds the in-memory metrics ring and the
// Prometheus collectors, and logs slow operations.
//
// The handle is constructed once in main and injected everywhere it is
// needed — there is no package-level singleton.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// probeSlowThreshold is how long the background health probe may take
// before it is logged as slow.
const probeSlowThreshold = time.Second

// maxRecordedOps caps the metrics ring buffer. Older entries are
// discarded FIFO once the cap is reached.
const maxRecordedOps = 1000

// opNameLimit truncates operation names in slow-query log lines.
const opNameLimit = 100

// Querier is the minimal query interface satisfied by *pgxpool.Pool,
// *pgx.Conn, and pgx.Tx. Storage code accepts this interface so
// integration tests can pass a transaction that is rolled back after each
// test, giving free per-test isolation.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config carries the tunables for Connect.
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string

	// SlowQueryThreshold marks operations slower than this as slow.
	// Zero falls back to 100ms.
	SlowQueryThreshold time.Duration

	// HealthInterval is the background probe period. Zero disables the probe.
	HealthInterval time.Duration
}

// DB wraps a pgx connection pool with operation timing, slow-query
// logging, and a background liveness probe. Safe for concurrent use.
type DB struct {
	pool    *pgxpool.Pool
	log     *slog.Logger
	slow    time.Duration
	healthy atomic.Bool

	mu      sync.Mutex
	ops     []OpMetric // FIFO ring, at most maxRecordedOps entries
	slowOps int
	total   int

	stopProbe chan struct{}
	probeDone chan struct{}
}

// OpMetric is one recorded storage operation.
type OpMetric struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
	Failed   bool          `json:"failed"`
}

// Snapshot summarizes the recorded operations for diagnostics endpoints.
type Snapshot struct {
	TotalQueries    int           `json:"total_queries"`
	AverageDuration time.Duration `json:"average_duration"`
	SlowQueries     int           `json:"slow_queries"`
	RecentQueries   []OpMetric    `json:"recent_queries"` // most recent 10, newest last
}

// Connect opens the pool, verifies the database is reachable with a cheap
// probe (retried with capped exponential backoff), and starts the
// background health loop. A probe that never succeeds is fatal: the error
// propagates and no DB is returned.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db.Connect: create pool: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := probe(ctx, pool); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("db.Connect: probe: %w", err)
	}

	slow := cfg.SlowQueryThreshold
	if slow <= 0 {
		slow = 100 * time.Millisecond
	}

	d := &DB{
		pool:      pool,
		log:       log,
		slow:      slow,
		stopProbe: make(chan struct{}),
		probeDone: make(chan struct{}),
	}
	d.healthy.Store(true)
	healthGauge.Set(1)

	if cfg.HealthInterval > 0 {
		go d.healthLoop(cfg.HealthInterval)
	} else {
		close(d.probeDone)
	}

	return d, nil
}

// Pool exposes the underlying pool for code that needs to begin
// transactions or run its own queries. The pool satisfies Querier.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Healthy reports the result of the most recent liveness probe.
func (d *DB) Healthy() bool {
	return d.healthy.Load()
}

// Close stops the health loop and closes the pool.
func (d *DB) Close() {
	close(d.stopProbe)
	<-d.probeDone
	d.pool.Close()
}

// Execute runs op under the given operation name, recording its duration
// whether it succeeds or fails. Failures are recorded as failed and the
// original error is returned unchanged — this layer never masks an error.
func Execute[T any](ctx context.Context, d *DB, name string, op func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := op(ctx)
	dur := time.Since(start)

	d.record(name, dur, err != nil)

	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// record appends one operation to the metrics ring and the Prometheus
// collectors, logging a warning when the operation was slow.
func (d *DB) record(name string, dur time.Duration, failed bool) {
	queryDuration.WithLabelValues(name).Observe(dur.Seconds())
	if failed {
		queryFailures.WithLabelValues(name).Inc()
	}

	slow := dur > d.slow
	if slow {
		slowQueries.Inc()
		d.log.Warn("slow storage operation",
			"operation", truncate(name, opNameLimit),
			"duration_ms", dur.Milliseconds(),
			"failed", failed,
		)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.ops = append(d.ops, OpMetric{Name: name, Duration: dur, At: time.Now(), Failed: failed})
	if len(d.ops) > maxRecordedOps {
		d.ops = d.ops[len(d.ops)-maxRecordedOps:]
	}
	d.total++
	if slow {
		d.slowOps++
	}
}

// Metrics returns a summary of all recorded operations. TotalQueries and
// SlowQueries count every operation since startup; AverageDuration and
// RecentQueries cover only the retained ring.
func (d *DB) Metrics() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sum time.Duration
	for _, op := range d.ops {
		sum += op.Duration
	}

	var avg time.Duration
	if len(d.ops) > 0 {
		avg = sum / time.Duration(len(d.ops))
	}

	recent := d.ops
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	last10 := make([]OpMetric, len(recent))
	copy(last10, recent)

	return Snapshot{
		TotalQueries:    d.total,
		AverageDuration: avg,
		SlowQueries:     d.slowOps,
		RecentQueries:   last10,
	}
}

// healthLoop re-probes the database on a fixed interval, flipping the
// healthy flag on failure. Probe failures only affect the flag — they are
// never surfaced into request paths.
func (d *DB) healthLoop(interval time.Duration) {
	defer close(d.probeDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopProbe:
			return
		case <-ticker.C:
			ctx, cancel := probeContext()
			start := time.Now()
			err := probe(ctx, d.pool)
			dur := time.Since(start)
			cancel()

			if err != nil {
				d.healthy.Store(false)
				healthGauge.Set(0)
				d.log.Warn("database health probe failed", "error", err)
				continue
			}

			d.healthy.Store(true)
			healthGauge.Set(1)
			if dur > probeSlowThreshold {
				d.log.Warn("database health probe slow", "duration_ms", dur.Milliseconds())
			}
		}
	}
}

// probeContext bounds a single background probe. Without a deadline a
// wedged connection would stall the loop forever instead of flipping the
// health flag; the slow-probe threshold is the natural upper bound.
func probeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), probeSlowThreshold)
}

// probe issues the cheapest possible liveness query.
func probe(ctx context.Context, pool *pgxpool.Pool) error {
	var one int
	return pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// truncate shortens s to at most n bytes for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
