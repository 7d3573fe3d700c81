package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newCapturedLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return slog.New(&contextHandler{base: base}), buf
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return record
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		logLevel     slog.Level
		wantLogged   bool
	}{
		{"debug suppressed at info level", slog.LevelInfo, slog.LevelDebug, false},
		{"info logged at info level", slog.LevelInfo, slog.LevelInfo, true},
		{"warn logged at info level", slog.LevelInfo, slog.LevelWarn, true},
		{"info suppressed at error level", slog.LevelError, slog.LevelInfo, false},
		{"error logged at error level", slog.LevelError, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newCapturedLogger(tt.handlerLevel)

			logger.Log(context.Background(), tt.logLevel, "message")

			if logged := buf.Len() > 0; logged != tt.wantLogged {
				t.Errorf("expected logged=%v, got %v", tt.wantLogged, logged)
			}
		})
	}
}

func TestTraceCorrelationFields(t *testing.T) {
	t.Run("includes trace and span ids when a span is active", func(t *testing.T) {
		_, cleanup := setupTracerProvider(t)
		defer cleanup()

		ctx, span := StartSpan(context.Background(), "test-operation")
		defer span.End()

		logger, buf := newCapturedLogger(slog.LevelInfo)
		logger.InfoContext(ctx, "order placed")

		record := decodeLogLine(t, buf)
		if record["trace_id"] != span.SpanContext().TraceID().String() {
			t.Errorf("expected trace_id %s, got %v", span.SpanContext().TraceID(), record["trace_id"])
		}
		if record["span_id"] != span.SpanContext().SpanID().String() {
			t.Errorf("expected span_id %s, got %v", span.SpanContext().SpanID(), record["span_id"])
		}
	})

	t.Run("omits trace fields without an active span", func(t *testing.T) {
		logger, buf := newCapturedLogger(slog.LevelInfo)

		logger.InfoContext(context.Background(), "order placed")

		record := decodeLogLine(t, buf)
		if _, ok := record["trace_id"]; ok {
			t.Error("expected no trace_id field")
		}
		if _, ok := record["span_id"]; ok {
			t.Error("expected no span_id field")
		}
	})
}

func TestLoggerComposition(t *testing.T) {
	t.Run("carries chained attributes", func(t *testing.T) {
		logger, buf := newCapturedLogger(slog.LevelInfo)

		logger.With("service", "orders").With("order_id", int64(7)).Info("saved")

		record := decodeLogLine(t, buf)
		if record["service"] != "orders" {
			t.Errorf("expected service attribute, got %v", record["service"])
		}
		if record["order_id"] != float64(7) {
			t.Errorf("expected order_id attribute, got %v", record["order_id"])
		}
	})

	t.Run("nests record attributes under groups", func(t *testing.T) {
		logger, buf := newCapturedLogger(slog.LevelInfo)

		logger.WithGroup("order").Info("saved", "id", int64(7))

		record := decodeLogLine(t, buf)
		group, ok := record["order"].(map[string]any)
		if !ok {
			t.Fatalf("expected order group, got %v", record["order"])
		}
		if group["id"] != float64(7) {
			t.Errorf("expected id inside group, got %v", group["id"])
		}
	})

	t.Run("keeps trace fields at the top level outside groups", func(t *testing.T) {
		_, cleanup := setupTracerProvider(t)
		defer cleanup()

		ctx, span := StartSpan(context.Background(), "test-operation")
		defer span.End()

		logger, buf := newCapturedLogger(slog.LevelInfo)
		logger.WithGroup("order").InfoContext(ctx, "saved", "id", int64(7))

		record := decodeLogLine(t, buf)
		if _, ok := record["trace_id"]; !ok {
			t.Error("expected top-level trace_id")
		}
		group, ok := record["order"].(map[string]any)
		if !ok {
			t.Fatalf("expected order group, got %v", record["order"])
		}
		if _, ok := group["trace_id"]; ok {
			t.Error("trace_id must not be nested inside the group")
		}
	})
}
