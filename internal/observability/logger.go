package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type ctxKey string

const ctxKeyTurn ctxKey = "turn"

// Options selects the level, format ("text" or "json") and destination.
// Output is "stderr", "stdout", "discard" or a file path.
type Options struct {
	Level  string
	Format string
	Output string
}

// ParseLevel maps debug/info/warn/error to a slog level; unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger. The returned closer releases the log
// file, if one was opened.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	hopts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var out io.Writer
	var closer io.Closer = nopCloser{}
	switch opts.Output {
	case "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "":
		out = io.Discard
	default:
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", opts.Output, err)
		}
		out, closer = f, f
	}
	return New(out, opts.Format, hopts), closer, nil
}

// New builds a text or JSON logger over w.
func New(w io.Writer, format string, hopts *slog.HandlerOptions) *slog.Logger {
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}
	return slog.New(handler)
}

// WithTurn tags ctx with a user-visible turn identifier such as "adapt-3".
func WithTurn(ctx context.Context, turn string) context.Context {
	return context.WithValue(ctx, ctxKeyTurn, turn)
}

// TurnFrom returns the turn stored in ctx, or "".
func TurnFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	turn, _ := ctx.Value(ctxKeyTurn).(string)
	return turn
}

// LoggerFromContext adds the turn to base if present.
func LoggerFromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if turn := TurnFrom(ctx); turn != "" {
		return base.With("turn", turn)
	}
	return base
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
