// Package sqlite persists fetched indicator records in an embedded SQLite
// database so the dashboard survives restarts without re-hitting the Census
// API. The store assumes a single process owns the database file; it is not
// a multi-writer coordination layer.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
	"github.com/couchcryptid/sdoh-dashboard/internal/observability"
)

// Store caches record lists keyed by (metric, scope) with a per-key fetch
// timestamp. State and county entries live in separate tables so the two
// row shapes never collide. A degraded store (unreadable database) answers
// every Get with a miss and every Put with an error; it never takes the
// process down.
type Store struct {
	db      *sql.DB
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

const migration = `
CREATE TABLE IF NOT EXISTS state_cache (
	cache_key  TEXT NOT NULL,
	name       TEXT NOT NULL,
	fips       TEXT NOT NULL,
	value      REAL,
	fetched_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS county_cache (
	cache_key   TEXT NOT NULL,
	name        TEXT NOT NULL,
	state_fips  TEXT NOT NULL,
	county_fips TEXT NOT NULL,
	value       REAL,
	fetched_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_state_cache_key ON state_cache(cache_key);
CREATE INDEX IF NOT EXISTS idx_county_cache_key ON county_cache(cache_key);
`

// Open opens (or creates) the cache database at path and runs the schema
// migration. Open never fails hard: an unreadable or corrupt database is
// logged and yields a degraded store, because a broken cache must not stop
// the dashboard from serving live data.
func Open(path string, ttl time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	s := &Store{ttl: ttl, clock: clock, logger: logger, metrics: metrics}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Warn("cache store unavailable, serving uncached", "path", path, "error", err)
		return s
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			logger.Warn("cache store unavailable, serving uncached", "path", path, "error", err)
			return s
		}
	}
	if _, err := db.Exec(migration); err != nil {
		db.Close()
		logger.Warn("cache store unavailable, serving uncached", "path", path, "error", err)
		return s
	}

	s.db = db
	return s
}

// Close releases the database handle. Safe on a degraded store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// cacheKey builds the composite key persisted with every row.
func cacheKey(metric string, scope domain.Scope) string {
	return fmt.Sprintf("%s_%s", metric, scope)
}

func scopeLabel(scope domain.Scope) string {
	if scope.IsStates() {
		return "state"
	}
	return "county"
}

// Get returns the cached records for (metric, scope) when an entry exists
// and is younger than the retention window. Expiry is judged against the
// entry's own stored timestamp: age >= TTL means expired. Read failures of
// any kind degrade to a miss.
func (s *Store) Get(ctx context.Context, metric string, scope domain.Scope) ([]domain.Record, bool) {
	label := scopeLabel(scope)
	if s.db == nil {
		s.metrics.CacheLookups.WithLabelValues(label, "error").Inc()
		return nil, false
	}

	var (
		records   []domain.Record
		fetchedAt string
		err       error
	)
	if scope.IsStates() {
		records, fetchedAt, err = s.getStates(ctx, cacheKey(metric, scope))
	} else {
		records, fetchedAt, err = s.getCounties(ctx, cacheKey(metric, scope))
	}
	if err != nil {
		s.logger.Warn("cache read failed, treating as miss", "metric", metric, "scope", scope, "error", err)
		s.metrics.CacheLookups.WithLabelValues(label, "error").Inc()
		return nil, false
	}
	if len(records) == 0 {
		s.metrics.CacheLookups.WithLabelValues(label, "miss").Inc()
		return nil, false
	}

	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		s.logger.Warn("cache entry has malformed timestamp, treating as miss", "metric", metric, "scope", scope, "error", err)
		s.metrics.CacheLookups.WithLabelValues(label, "error").Inc()
		return nil, false
	}
	if s.clock.Now().Sub(ts) >= s.ttl {
		s.metrics.CacheLookups.WithLabelValues(label, "expired").Inc()
		return nil, false
	}

	s.metrics.CacheLookups.WithLabelValues(label, "hit").Inc()
	return records, true
}

func (s *Store) getStates(ctx context.Context, key string) ([]domain.Record, string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, fips, value, fetched_at FROM state_cache WHERE cache_key = ?`, key)
	if err != nil {
		return nil, "", fmt.Errorf("query state cache: %w", err)
	}
	defer rows.Close()

	var (
		records   []domain.Record
		fetchedAt string
	)
	for rows.Next() {
		var (
			rec   domain.StateRecord
			value sql.NullFloat64
		)
		if err := rows.Scan(&rec.Name, &rec.FIPS, &value, &fetchedAt); err != nil {
			return nil, "", fmt.Errorf("scan state cache row: %w", err)
		}
		if value.Valid {
			rec.Value = &value.Float64
		}
		records = append(records, rec)
	}
	return records, fetchedAt, rows.Err()
}

func (s *Store) getCounties(ctx context.Context, key string) ([]domain.Record, string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, state_fips, county_fips, value, fetched_at FROM county_cache WHERE cache_key = ?`, key)
	if err != nil {
		return nil, "", fmt.Errorf("query county cache: %w", err)
	}
	defer rows.Close()

	var (
		records   []domain.Record
		fetchedAt string
	)
	for rows.Next() {
		var (
			rec   domain.CountyRecord
			value sql.NullFloat64
		)
		if err := rows.Scan(&rec.Name, &rec.StateFIPS, &rec.CountyFIPS, &value, &fetchedAt); err != nil {
			return nil, "", fmt.Errorf("scan county cache row: %w", err)
		}
		if value.Valid {
			rec.Value = &value.Float64
		}
		records = append(records, rec)
	}
	return records, fetchedAt, rows.Err()
}

// Put overwrites the entry for (metric, scope) with the given records, all
// stamped with a single clock reading so the whole entry shares one
// freshness clock. Failure is best-effort: the caller keeps its in-memory
// result and only logs the error.
func (s *Store) Put(ctx context.Context, metric string, scope domain.Scope, records []domain.Record) error {
	label := scopeLabel(scope)
	if s.db == nil {
		s.metrics.CacheWrites.WithLabelValues(label, "error").Inc()
		return fmt.Errorf("cache store is degraded")
	}

	key := cacheKey(metric, scope)
	now := s.clock.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.metrics.CacheWrites.WithLabelValues(label, "error").Inc()
		return fmt.Errorf("begin cache write: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.insert(ctx, tx, key, now, scope, records); err != nil {
		s.metrics.CacheWrites.WithLabelValues(label, "error").Inc()
		return err
	}

	if err := tx.Commit(); err != nil {
		s.metrics.CacheWrites.WithLabelValues(label, "error").Inc()
		return fmt.Errorf("commit cache write: %w", err)
	}
	s.metrics.CacheWrites.WithLabelValues(label, "success").Inc()
	return nil
}

func (s *Store) insert(ctx context.Context, tx *sql.Tx, key, now string, scope domain.Scope, records []domain.Record) error {
	if scope.IsStates() {
		if _, err := tx.ExecContext(ctx, `DELETE FROM state_cache WHERE cache_key = ?`, key); err != nil {
			return fmt.Errorf("clear state cache entry: %w", err)
		}
		for _, r := range records {
			rec, ok := r.(domain.StateRecord)
			if !ok {
				return fmt.Errorf("state scope given %T record", r)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO state_cache (cache_key, name, fips, value, fetched_at) VALUES (?, ?, ?, ?, ?)`,
				key, rec.Name, rec.FIPS, nullable(rec.Value), now); err != nil {
				return fmt.Errorf("insert state cache row: %w", err)
			}
		}
		return nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM county_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("clear county cache entry: %w", err)
	}
	for _, r := range records {
		rec, ok := r.(domain.CountyRecord)
		if !ok {
			return fmt.Errorf("county scope given %T record", r)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO county_cache (cache_key, name, state_fips, county_fips, value, fetched_at) VALUES (?, ?, ?, ?, ?, ?)`,
			key, rec.Name, rec.StateFIPS, rec.CountyFIPS, nullable(rec.Value), now); err != nil {
			return fmt.Errorf("insert county cache row: %w", err)
		}
	}
	return nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
