package prometheus

import (
	"time"

	apperrors "github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

// AppMetrics holds every metric family the engine emits.  All families are
// registered once at startup through NewAppMetrics.
type AppMetrics struct {
	// Mutation engine
	MutationsTotal    CounterVec
	MutationDuration  HistogramVec
	MoleculeAtomCount HistogramVec

	// Derivation and naming
	NamingTotal      CounterVec
	NamingDuration   HistogramVec
	NotationTotal    CounterVec
	NotationDuration HistogramVec

	// Persistence
	DBQueryDuration        HistogramVec
	DBConnectionPoolSize   GaugeVec
	DBConnectionPoolActive GaugeVec

	// Cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// System health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default bucket sets.  Graph operations are in-memory and fast; persistence
// buckets follow typical network round-trip latencies.
var (
	DefaultOpDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultDBDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultAtomCountBuckets  = []float64{1, 5, 10, 20, 50, 100, 200}
)

// NewAppMetrics registers all engine metric families on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.MutationsTotal = collector.RegisterCounter("mutations_total", "Graph mutation operations", "operation", "status")
	m.MutationDuration = collector.RegisterHistogram("mutation_duration_seconds", "Graph mutation duration", DefaultOpDurationBuckets, "operation")
	m.MoleculeAtomCount = collector.RegisterHistogram("molecule_atom_count", "Atom count of molecules after mutation", DefaultAtomCountBuckets, "operation")

	m.NamingTotal = collector.RegisterCounter("naming_total", "Systematic name generations", "status")
	m.NamingDuration = collector.RegisterHistogram("naming_duration_seconds", "Systematic name generation duration", DefaultOpDurationBuckets)
	m.NotationTotal = collector.RegisterCounter("notation_total", "SMILES generations", "status")
	m.NotationDuration = collector.RegisterHistogram("notation_duration_seconds", "SMILES generation duration", DefaultOpDurationBuckets)

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "operation")
	m.DBConnectionPoolSize = collector.RegisterGauge("db_pool_size", "Database connection pool size")
	m.DBConnectionPoolActive = collector.RegisterGauge("db_pool_active", "Database active connections")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by module and code", "module", "code")

	return m
}

// statusLabel maps an operation error to the conventional status label.
func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// RecordMutation records one mutation attempt: count, latency, and the
// resulting molecule size on success.
func RecordMutation(metrics *AppMetrics, operation string, atomCount int, duration time.Duration, err error) {
	if metrics == nil {
		return
	}
	metrics.MutationsTotal.WithLabelValues(operation, statusLabel(err)).Inc()
	metrics.MutationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err == nil {
		metrics.MoleculeAtomCount.WithLabelValues(operation).Observe(float64(atomCount))
	} else {
		RecordAppError(metrics, err)
	}
}

// RecordNaming records one systematic naming attempt.
func RecordNaming(metrics *AppMetrics, duration time.Duration, err error) {
	if metrics == nil {
		return
	}
	metrics.NamingTotal.WithLabelValues(statusLabel(err)).Inc()
	metrics.NamingDuration.WithLabelValues().Observe(duration.Seconds())
	if err != nil {
		RecordAppError(metrics, err)
	}
}

// RecordNotation records one SMILES generation attempt.
func RecordNotation(metrics *AppMetrics, duration time.Duration, err error) {
	if metrics == nil {
		return
	}
	metrics.NotationTotal.WithLabelValues(statusLabel(err)).Inc()
	metrics.NotationDuration.WithLabelValues().Observe(duration.Seconds())
	if err != nil {
		RecordAppError(metrics, err)
	}
}

// RecordDBQuery records latency for a repository operation and counts any
// failure under the store module.
func RecordDBQuery(metrics *AppMetrics, operation string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		RecordAppError(metrics, err)
	}
}

// RecordCacheAccess counts a cache hit or miss for the named cache.
func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if metrics == nil {
		return
	}
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordAppError counts an error under its originating module and code.
// Errors without a typed code land in the UNKNOWN bucket.
func RecordAppError(metrics *AppMetrics, err error) {
	if metrics == nil || err == nil {
		return
	}
	code := apperrors.GetCode(err)
	metrics.ErrorsTotal.WithLabelValues(code.Module(), string(code)).Inc()
}
