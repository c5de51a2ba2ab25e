package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	scoresComputedTotal  atomic.Uint64
	stackAnalysesTotal   atomic.Uint64
	plansGeneratedTotal  atomic.Uint64
	searchCacheHitsTotal atomic.Uint64
	searchCacheMissTotal atomic.Uint64

	planDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2000, 5000})
)

// IncScoreComputed increments the pair-score counter.
func IncScoreComputed() {
	scoresComputedTotal.Add(1)
}

// IncStackAnalyzed increments the stack-analysis counter.
func IncStackAnalyzed() {
	stackAnalysesTotal.Add(1)
}

// IncPlanGenerated increments the blueprint counter.
func IncPlanGenerated() {
	plansGeneratedTotal.Add(1)
}

// IncCacheHit increments the search cache hit counter.
func IncCacheHit() {
	searchCacheHitsTotal.Add(1)
}

// IncCacheMiss increments the search cache miss counter.
func IncCacheMiss() {
	searchCacheMissTotal.Add(1)
}

// ObservePlanDurationMs records a blueprint generation duration in milliseconds.
func ObservePlanDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	planDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "compat_scores_computed_total", "Total pair compatibility scores computed", scoresComputedTotal.Load())
	writeCounter(&buf, "stack_analyses_total", "Total stack analyses performed", stackAnalysesTotal.Load())
	writeCounter(&buf, "plans_generated_total", "Total project blueprints generated", plansGeneratedTotal.Load())
	writeCounter(&buf, "search_cache_hits_total", "Total search cache hits", searchCacheHitsTotal.Load())
	writeCounter(&buf, "search_cache_misses_total", "Total search cache misses", searchCacheMissTotal.Load())
	writeHistogram(&buf, "plan_duration_ms", "Blueprint generation duration in milliseconds", planDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
