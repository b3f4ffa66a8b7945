package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInfo_IncludesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "configurator", Output: &buf})

	ctx := logg.WithProductID(context.Background(), "prod-1")
	ctx = logg.WithField(ctx, "quantity", 150)
	logg.Info(ctx, "quote.computed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "configurator" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["product_id"] != "prod-1" {
		t.Fatalf("expected product_id field, got %v", entry["product_id"])
	}
	if entry["message"] != "quote.computed" {
		t.Fatalf("expected message, got %v", entry["message"])
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := ParseLevel("bogus"); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for bogus, got %v", got)
	}
}

func TestError_IncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "configurator", Output: &buf})

	logg.Error(context.Background(), "normalize.failed", nil)

	if !strings.Contains(buf.String(), "stack") {
		t.Fatalf("expected stack field in error log, got %q", buf.String())
	}
}
