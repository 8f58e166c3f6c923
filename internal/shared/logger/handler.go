package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
)

const redactedValue = "[REDACTED]"

// sensitiveKeys are attribute keys whose values never reach the log output.
var sensitiveKeys = map[string]struct{}{
	"password":          {},
	"access_token":      {},
	"refresh_token":     {},
	"authorization":     {},
	"stripe_signature":  {},
	"api_key":           {},
	"elevated_password": {},
	"code_verifier":     {},
}

// appHandler decorates a slog.Handler with two behaviours: it attaches the caller's
// source location for selected levels, and it redacts credential-bearing attributes.
// The wrapped handler should have AddSource: false in its options.
type appHandler struct {
	handler          slog.Handler
	showSourceLevels map[slog.Level]bool
}

// NewAppHandler wraps handler. Source location is added only for showSourceForLevels.
func NewAppHandler(handler slog.Handler, showSourceForLevels ...slog.Level) slog.Handler {
	levelMap := make(map[slog.Level]bool, len(showSourceForLevels))
	for _, level := range showSourceForLevels {
		levelMap[level] = true
	}
	return &appHandler{
		handler:          handler,
		showSourceLevels: levelMap,
	}
}

func (h *appHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(redactAttr(a))
		return true
	})

	if h.showSourceLevels[r.Level] {
		// skip runtime.Callers, this frame and the slog frame
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		f, _ := runtime.CallersFrames(pcs[:]).Next()
		clean.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: f.Function,
				File:     f.File,
				Line:     f.Line,
			}),
		})
	}

	return h.handler.Handle(ctx, clean)
}

func (h *appHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &appHandler{
		handler:          h.handler.WithAttrs(redacted),
		showSourceLevels: h.showSourceLevels,
	}
}

func (h *appHandler) WithGroup(name string) slog.Handler {
	return &appHandler{
		handler:          h.handler.WithGroup(name),
		showSourceLevels: h.showSourceLevels,
	}
}

func (h *appHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		out := make([]any, 0, len(group))
		for _, ga := range group {
			out = append(out, redactAttr(ga))
		}
		return slog.Group(a.Key, out...)
	}
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redactedValue)
	}
	return a
}
