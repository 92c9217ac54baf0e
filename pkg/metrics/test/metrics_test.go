package metrics_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/binhbb2204/Top-Movies/pkg/metrics"
	"github.com/gin-gonic/gin"
)

func TestCountersConcurrent(t *testing.T) {
	metrics.Reset()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metrics.IncrementSearches()
			metrics.IncrementMoviesAdded()
		}()
	}
	wg.Wait()

	if got := metrics.GetSearches(); got != 50 {
		t.Errorf("expected 50 searches, got %d", got)
	}
	if got := metrics.GetMoviesAdded(); got != 50 {
		t.Errorf("expected 50 added, got %d", got)
	}

	metrics.Reset()
	if metrics.GetSearches() != 0 || metrics.GetMoviesAdded() != 0 {
		t.Error("expected counters to reset")
	}
}

func TestRecordRequest(t *testing.T) {
	metrics.ResetRequestMetrics()

	metrics.RecordRequest(http.StatusOK, 10*time.Millisecond)
	metrics.RecordRequest(http.StatusBadGateway, 30*time.Millisecond)
	metrics.RecordRequest(http.StatusNotFound, 20*time.Millisecond)

	m := metrics.GetRequestMetrics()
	if m["requests_processed"] != 3 {
		t.Errorf("expected 3 processed, got %d", m["requests_processed"])
	}
	if m["requests_failed"] != 1 {
		t.Errorf("expected 1 failed, got %d", m["requests_failed"])
	}
	if m["peak_latency_ms"] != 30 {
		t.Errorf("expected peak 30ms, got %d", m["peak_latency_ms"])
	}
	if m["average_latency_ms"] != 20 {
		t.Errorf("expected average 20ms, got %d", m["average_latency_ms"])
	}
}

func TestMetricsHandler(t *testing.T) {
	metrics.Reset()
	metrics.IncrementMoviesDeleted()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", metrics.NewHandler().Metrics)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["movies_deleted_total"] != float64(1) {
		t.Errorf("expected 1 deletion, got %v", body["movies_deleted_total"])
	}
	if _, ok := body["requests"].(map[string]interface{}); !ok {
		t.Errorf("expected request metrics, got %v", body["requests"])
	}
}
