// Package logging provides a custom slog handler that mirrors WARN and
// ERROR records into the analytics_events table so operational problems
// show up on the admin dashboard alongside content analytics.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

// EventWriter is the subset of the event store the handler needs.
type EventWriter interface {
	Create(ctx context.Context, ev *model.AnalyticsEvent) error
}

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes records at WARN level and above to the analytics event log.
type EventLogHandler struct {
	inner  slog.Handler
	events EventWriter
	level  slog.Level
	attrs  []slog.Attr
}

// NewEventLogHandler creates an EventLogHandler forwarding WARN and above.
func NewEventLogHandler(inner slog.Handler, events EventWriter) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, events, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates an EventLogHandler with a custom
// minimum forwarding level.
func NewEventLogHandlerWithLevel(inner slog.Handler, events EventWriter, level slog.Level) *EventLogHandler {
	return &EventLogHandler{inner: inner, events: events, level: level}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler. Bound attrs are kept so they reach
// the persisted event detail, not just the inner handler's output.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	bound = append(bound, h.attrs...)
	bound = append(bound, attrs...)
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), events: h.events, level: h.level, attrs: bound}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), events: h.events, level: h.level, attrs: h.attrs}
}

func (h *EventLogHandler) writeEvent(r slog.Record) {
	eventType := model.EventLogWarning
	if r.Level >= slog.LevelError {
		eventType = model.EventLogError
	}

	detail := map[string]any{"message": r.Message}
	for _, a := range h.attrs {
		detail[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		detail[a.Key] = a.Value.String()
		return true
	})
	data, err := json.Marshal(detail)
	if err != nil {
		data = []byte(`{}`)
	}

	// Background context so the event survives request cancellation.
	// Failures here are swallowed: logging the log would loop.
	_ = h.events.Create(context.Background(), &model.AnalyticsEvent{
		Type:      eventType,
		Data:      string(data),
		CreatedAt: r.Time,
	})
}
