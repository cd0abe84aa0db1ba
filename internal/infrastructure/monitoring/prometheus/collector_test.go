package prometheus

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace: "test",
		Subsystem: "unit",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollectorRequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{Subsystem: "unit"}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestNewMetricsCollectorProcessMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace:            "test",
		EnableProcessMetrics: true,
	}, logging.NewNopLogger())
	require.NoError(t, err)

	assert.Contains(t, scrapeMetrics(t, c), "process_cpu_seconds_total")
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)
	counter := c.RegisterCounter("ops_total", "Operations", "kind")
	counter.WithLabelValues("extend").Inc()
	counter.WithLabelValues("extend").Add(2)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_ops_total{kind="extend"} 3`)
}

func TestRegisterCounterDuplicateSharesSeries(t *testing.T) {
	c := newTestCollector(t)
	c1 := c.RegisterCounter("dup_total", "help")
	c2 := c.RegisterCounter("dup_total", "help")

	c1.WithLabelValues().Inc()
	c2.WithLabelValues().Inc()

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_dup_total 2")
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)
	gauge := c.RegisterGauge("pool_size", "Pool size")
	gauge.WithLabelValues().Set(8)
	gauge.WithLabelValues().Dec()

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_pool_size 7")
}

func TestRegisterHistogramDefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	hist := c.RegisterHistogram("latency_seconds", "Latency", nil)
	hist.WithLabelValues().Observe(0.002)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, "test_unit_latency_seconds_bucket")
	assert.Contains(t, output, "test_unit_latency_seconds_count 1")
}

func TestRegisterSummary(t *testing.T) {
	c := newTestCollector(t)
	sum := c.RegisterSummary("payload_bytes", "Payload size", nil)
	sum.WithLabelValues().Observe(128)

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_payload_bytes_count 1")
}

func TestTypeConflictReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("conflict", "help").WithLabelValues().Inc()

	gauge := c.RegisterGauge("conflict", "help")
	gauge.WithLabelValues().Set(10)

	assert.Contains(t, scrapeMetrics(t, c), "# TYPE test_unit_conflict counter")
}

func TestConcurrentRegistration(t *testing.T) {
	c := newTestCollector(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RegisterCounter("concurrent_total", "help", "id").WithLabelValues("1").Inc()
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_concurrent_total{id="1"} 50`)
}

func TestTimerObservesDuration(t *testing.T) {
	c := newTestCollector(t)
	hist := c.RegisterHistogram("timed_seconds", "Timed", nil)

	timer := NewTimer(hist.WithLabelValues())
	time.Sleep(5 * time.Millisecond)
	timer.ObserveDuration()

	assert.Contains(t, scrapeMetrics(t, c), "test_unit_timed_seconds_count 1")
}

func TestTimerNilHistogram(t *testing.T) {
	timer := NewTimer(nil)
	timer.ObserveDuration()
}

func TestMustRegisterAndUnregister(t *testing.T) {
	c := newTestCollector(t)
	pc := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_total"})
	c.MustRegister(pc)
	assert.Contains(t, scrapeMetrics(t, c), "custom_total")

	assert.True(t, c.Unregister(pc))
	assert.NotContains(t, scrapeMetrics(t, c), "custom_total")
}
