package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// MaxValueLen is the maximum length in bytes of a string attribute value.
// Longer values are cut and suffixed with TruncationMark.
const MaxValueLen = 256

// TruncationMark is appended to values cut at MaxValueLen.
const TruncationMark = "..."

// SafeHandler wraps an slog.Handler to neutralize untrusted string values.
// It intercepts log records and escapes attribute values that contain
// control, format or invalid UTF-8 characters before passing them to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than escaping at each call
// site because:
//  1. Call sites cannot forget to escape a folder name
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. It integrates seamlessly with standard slog APIs
type SafeHandler struct {
	// handler is the underlying slog handler that receives neutralized records.
	handler slog.Handler
}

// NewSafeHandler creates a new SafeHandler wrapping the given handler.
// If handler is nil, the returned SafeHandler will use slog.Default().Handler().
func NewSafeHandler(handler slog.Handler) *SafeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SafeHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SafeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle neutralizes the record's attributes and passes it to the underlying handler.
func (h *SafeHandler) Handle(ctx context.Context, r slog.Record) error {
	safe := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		safe.AddAttrs(h.neutralizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, safe)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *SafeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	safeAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		safeAttrs[i] = h.neutralizeAttr(a)
	}
	return &SafeHandler{handler: h.handler.WithAttrs(safeAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SafeHandler) WithGroup(name string) slog.Handler {
	return &SafeHandler{handler: h.handler.WithGroup(name)}
}

// neutralizeAttr rewrites a single attribute, recursively handling groups.
func (h *SafeHandler) neutralizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		safeAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			safeAttrs[i] = h.neutralizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(safeAttrs...)}
	case slog.KindString:
		return slog.String(a.Key, Neutralize(a.Value.String()))
	case slog.KindAny:
		// Filesystem errors embed the offending path in their message.
		if err, ok := a.Value.Any().(error); ok && err != nil {
			return slog.String(a.Key, Neutralize(err.Error()))
		}
	}
	return a
}

// Neutralize returns s unchanged when it is safe to print, and otherwise a
// Go-quoted form of s in which unsafe characters are escaped.
// The result is capped at MaxValueLen bytes.
func Neutralize(s string) string {
	if !isSafe(s) {
		s = strconv.Quote(s)
	}
	return truncate(s, MaxValueLen)
}

// isSafe reports whether s is valid UTF-8 without control or format characters.
// Format characters (category Cf) include the bidirectional overrides.
func isSafe(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return false
		}
	}
	return true
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - len(TruncationMark)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncationMark
}

// NewLogger creates a new slog.Logger that writes text records through a SafeHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(verbose),
	}
	return slog.New(NewSafeHandler(slog.NewTextHandler(w, opts)))
}

// NewJSONLogger creates a new slog.Logger that writes JSON records through a
// SafeHandler. Useful for structured log aggregation in CI pipelines.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(verbose),
	}
	return slog.New(NewSafeHandler(slog.NewJSONHandler(w, opts)))
}

// levelFor maps the verbose flag to a log level.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
