package metrics

import (
	"sync/atomic"
	"time"
)

type RequestMetrics struct {
	RequestsProcessed atomic.Int64
	RequestsFailed    atomic.Int64
	TotalLatencyMs    atomic.Int64
	PeakLatencyMs     atomic.Int64
	startedAt         atomic.Int64
}

var requestMetrics = newRequestMetrics()

func newRequestMetrics() *RequestMetrics {
	m := &RequestMetrics{}
	m.startedAt.Store(time.Now().UnixNano())
	return m
}

// RecordRequest accounts one served HTTP request; 5xx statuses count as failures.
func RecordRequest(status int, latency time.Duration) {
	requestMetrics.RequestsProcessed.Add(1)
	if status >= 500 {
		requestMetrics.RequestsFailed.Add(1)
	}

	ms := latency.Milliseconds()
	requestMetrics.TotalLatencyMs.Add(ms)
	for {
		peak := requestMetrics.PeakLatencyMs.Load()
		if ms <= peak || requestMetrics.PeakLatencyMs.CompareAndSwap(peak, ms) {
			break
		}
	}
}

func GetRequestMetrics() map[string]int64 {
	processed := requestMetrics.RequestsProcessed.Load()
	var avg int64
	if processed > 0 {
		avg = requestMetrics.TotalLatencyMs.Load() / processed
	}
	return map[string]int64{
		"requests_processed": processed,
		"requests_failed":    requestMetrics.RequestsFailed.Load(),
		"average_latency_ms": avg,
		"peak_latency_ms":    requestMetrics.PeakLatencyMs.Load(),
	}
}

func ResetRequestMetrics() {
	requestMetrics.RequestsProcessed.Store(0)
	requestMetrics.RequestsFailed.Store(0)
	requestMetrics.TotalLatencyMs.Store(0)
	requestMetrics.PeakLatencyMs.Store(0)
	requestMetrics.startedAt.Store(time.Now().UnixNano())
}

func GetUptime() time.Duration {
	return time.Since(time.Unix(0, requestMetrics.startedAt.Load()))
}
