package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/binhbb2204/Top-Movies/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		" WARN ":  logger.WARN,
		"warning": logger.WARN,
		"ERROR":   logger.ERROR,
		"":        logger.INFO,
		"chatty":  logger.INFO,
	}
	for in, want := range cases {
		if got := logger.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.INFO, true, &buf).WithContext("component", "test")

	log.Info("movie_added", "movie_id", 7)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["event"] != "movie_added" {
		t.Errorf("unexpected event %v", entry["event"])
	}
	if entry["component"] != "test" || entry["movie_id"] != float64(7) {
		t.Errorf("unexpected fields %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WARN, false, &buf)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected lower levels to be dropped, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn line, got %q", out)
	}
}

func TestGetLoggerAfterInit(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.DEBUG, false, &buf)

	logger.GetLogger().Debug("startup")
	if !strings.Contains(buf.String(), "startup") {
		t.Errorf("expected global logger to write to buffer, got %q", buf.String())
	}
}
