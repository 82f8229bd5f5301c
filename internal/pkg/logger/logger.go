package logger

import (
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/httplog/v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures the process logger. Output should be stderr when the
// stdio transport owns stdout.
type Options struct {
	Level   string
	Format  string
	App     string
	Version string
	Env     string
}

// New builds the process-wide slog logger. JSON output uses the ECS field
// names of the HTTP request logger so both streams share one schema; text
// output is rendered by charmbracelet/log.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)

	var handler slog.Handler
	if strings.EqualFold(opts.Format, FormatJSON) {
		logFormat := httplog.SchemaECS.Concise(false)
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: logFormat.ReplaceAttr,
		})
	} else {
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           charmlog.Level(level),
		})
	}

	return slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
