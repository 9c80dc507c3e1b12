// Package xlogger builds the slog loggers used by the shamir command.
package xlogger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	Level      string
	LogType    string
	AddSource  bool
	SourcePath string

	// Output defaults to os.Stderr, keeping stdout free for shares and secrets.
	Output io.Writer
}

// New returns a logger for conf. Unknown levels fall back to info and unknown
// types to the text handler; call Validate first to reject them instead.
func New(conf Config) *slog.Logger {
	level, err := ParseLevel(conf.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		AddSource:   conf.AddSource,
		Level:       level,
		ReplaceAttr: replaceAttr(conf),
	}

	out := conf.Output
	if out == nil {
		out = os.Stderr
	}

	return slog.New(getHandler(conf.LogType, out, opts))
}

// Validate reports an unknown level or log type.
func (conf Config) Validate() error {
	if _, err := ParseLevel(conf.Level); err != nil {
		return err
	}

	switch strings.ToLower(conf.LogType) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("xlogger: unknown log type %q", conf.LogType)
	}
}

// ParseLevel maps debug, info, warn and error to slog levels. An empty string is info.
func ParseLevel(logLevel string) (slog.Level, error) {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("xlogger: unknown log level %q", logLevel)
	}
}

func getHandler(logType string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(logType) {
	case "json":
		return slog.NewJSONHandler(out, opts)

	default:
		return slog.NewTextHandler(out, opts)
	}
}

func replaceAttr(conf Config) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}

		source, ok := attr.Value.Any().(*slog.Source)
		if !ok || source == nil {
			return attr
		}

		file := source.File
		if conf.SourcePath != "" {
			if index := strings.Index(file, conf.SourcePath); index >= 0 {
				file = file[index+len(conf.SourcePath):]
			}
		}

		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, source.Line))
	}
}
