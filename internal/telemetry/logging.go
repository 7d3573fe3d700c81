package telemetry

import (
	"context"
	"log/slog"
	"os"
)

// NewLogger builds a JSON slog logger that stamps every record with the
// trace and span IDs found in the request context, so log lines can be
// joined with traces in the backend.
func NewLogger(level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(&contextHandler{base: base})
}

// contextHandler decorates a slog.Handler with trace correlation fields.
// Attrs and groups accumulated via WithAttrs/WithGroup are replayed on every
// Handle call so that trace_id and span_id always land at the top level of
// the record, outside any group.
type contextHandler struct {
	base   slog.Handler
	groups []string
	attrs  []slog.Attr
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	out := h.base

	var correlation []slog.Attr
	if traceID := TraceID(ctx); traceID != "" {
		correlation = append(correlation, slog.String("trace_id", traceID))
	}
	if spanID := SpanID(ctx); spanID != "" {
		correlation = append(correlation, slog.String("span_id", spanID))
	}
	if len(correlation) > 0 {
		out = out.WithAttrs(correlation)
	}

	if len(h.attrs) > 0 {
		out = out.WithAttrs(h.attrs)
	}
	for _, group := range h.groups {
		out = out.WithGroup(group)
	}

	return out.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &contextHandler{base: h.base, groups: h.groups, attrs: merged}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	return &contextHandler{base: h.base, groups: groups, attrs: h.attrs}
}
