package build

import (
	"context"
	"log/slog"
	"os"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

// HandlerSet fans each log record out to a set of btclog handlers, for
// example one writing to the console and one writing to the log file.
type HandlerSet struct {
	level btclogv1.Level
	set   []btclog.Handler
}

// A compile-time check to ensure HandlerSet implements btclog.Handler.
var _ btclog.Handler = (*HandlerSet)(nil)

// NewHandlerSet creates a HandlerSet over the given handlers and applies level
// to all of them.
func NewHandlerSet(level btclogv1.Level,
	handlers ...btclog.Handler) *HandlerSet {

	h := &HandlerSet{
		set: handlers,
	}
	h.SetLevel(level)

	return h
}

// Enabled reports whether any handler of the set handles records at the given
// level.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.set {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every handler that's enabled for its level.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.set {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}

	return nil
}

// WithAttrs returns a new slog.Handler with the attributes added to every
// handler of the set.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) WithAttrs(attrs []slog.Attr) slog.Handler {
	set := make([]slog.Handler, len(h.set))
	for i, handler := range h.set {
		set[i] = handler.WithAttrs(attrs)
	}

	return &reducedSet{set: set}
}

// WithGroup returns a new slog.Handler with the group applied to every handler
// of the set.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) WithGroup(name string) slog.Handler {
	set := make([]slog.Handler, len(h.set))
	for i, handler := range h.set {
		set[i] = handler.WithGroup(name)
	}

	return &reducedSet{set: set}
}

// SubSystem returns a copy of the set with every handler tagged with the given
// subsystem.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) SubSystem(tag string) btclog.Handler {
	set := make([]btclog.Handler, len(h.set))
	for i, handler := range h.set {
		set[i] = handler.SubSystem(tag)
	}

	return NewHandlerSet(h.level, set...)
}

// SetLevel changes the logging level of every handler in the set.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) SetLevel(level btclogv1.Level) {
	for _, handler := range h.set {
		handler.SetLevel(level)
	}
	h.level = level
}

// Level returns the current logging level of the set.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) Level() btclogv1.Level {
	return h.level
}

// WithPrefix returns a copy of the set with the prefix added to every
// handler.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) WithPrefix(prefix string) btclog.Handler {
	set := make([]btclog.Handler, len(h.set))
	for i, handler := range h.set {
		set[i] = handler.WithPrefix(prefix)
	}

	return NewHandlerSet(h.level, set...)
}

// reducedSet is a plain slog.Handler fan-out, returned once attributes or
// groups have been attached.
type reducedSet struct {
	set []slog.Handler
}

// Enabled reports whether any handler of the set handles records at the given
// level.
//
// NOTE: this is part of the slog.Handler interface.
func (r *reducedSet) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range r.set {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every enabled handler.
//
// NOTE: this is part of the slog.Handler interface.
func (r *reducedSet) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range r.set {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}

	return nil
}

// WithAttrs adds the attributes to every handler of the set.
//
// NOTE: this is part of the slog.Handler interface.
func (r *reducedSet) WithAttrs(attrs []slog.Attr) slog.Handler {
	set := make([]slog.Handler, len(r.set))
	for i, handler := range r.set {
		set[i] = handler.WithAttrs(attrs)
	}

	return &reducedSet{set: set}
}

// WithGroup applies the group to every handler of the set.
//
// NOTE: this is part of the slog.Handler interface.
func (r *reducedSet) WithGroup(name string) slog.Handler {
	set := make([]slog.Handler, len(r.set))
	for i, handler := range r.set {
		set[i] = handler.WithGroup(name)
	}

	return &reducedSet{set: set}
}

// NewDefaultHandlers returns the handlers described by cfg: a console handler
// writing to stderr and a file handler writing to the given writer. Disabled
// loggers are left out.
func NewDefaultHandlers(cfg *LogConfig,
	logFile *RotatingLogWriter) []btclog.Handler {

	var handlers []btclog.Handler
	if !cfg.Console.Disable {
		handlers = append(handlers, btclog.NewDefaultHandler(
			os.Stderr, cfg.Console.HandlerOptions()...,
		))
	}

	if !cfg.File.Disable && logFile != nil {
		handlers = append(handlers, btclog.NewDefaultHandler(
			logFile, cfg.File.HandlerOptions()...,
		))
	}

	return handlers
}
