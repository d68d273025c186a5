// Package log builds the [slog.Handler] used by the versionsync CLI.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// Format is the encoding of log records.
type Format string

const (
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

// ParseFormat parses a [Format], ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatLogfmt, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, s)
}

func (f Format) formatter() log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	case FormatText:
	}

	return log.TextFormatter
}

// ParseLevel parses a level name into a [slog.Level]. "warning" is accepted
// as an alias of "warn".
func ParseLevel(s string) (slog.Level, error) {
	name := strings.ToLower(s)
	if name == "warning" {
		name = "warn"
	}

	lvl, err := log.ParseLevel(name)
	if err != nil || lvl == log.FatalLevel {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, s)
	}

	return slog.Level(lvl), nil
}

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		Formatter:       format.formatter(),
		ReportTimestamp: format != FormatText,
	})
}

// CreateHandlerWithStrings parses level and format and creates a
// [slog.Handler] writing to w.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, lvl, f), nil
}
