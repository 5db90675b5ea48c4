// Package logging builds the service's slog.Logger from command-line flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FormatFlagName = "logformat"
	LevelFlagName  = "loglevel"
	OutputFlagName = "logoutput"
)

// Flag values.
const (
	FormatJSON = "json"
	FormatText = "text"

	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// RegisterFlags adds the logging flags to flagset.
func RegisterFlags(flagset *pflag.FlagSet) {
	flagset.String(FormatFlagName, FormatText, "log format (text, json)")
	flagset.String(LevelFlagName, LevelInfo, "log level (debug, info, warn, error)")
	flagset.String(OutputFlagName, OutputStderr, "log destination (stdout, stderr)")
}

// FromCommand creates a logger configured by the command's logging flags.
func FromCommand(cmd *cobra.Command) (*slog.Logger, error) {
	flags := cmd.Flags()

	levelName, err := flags.GetString(LevelFlagName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", LevelFlagName, err)
	}
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	output, err := flags.GetString(OutputFlagName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", OutputFlagName, err)
	}
	var w io.Writer
	switch output {
	case OutputStdout:
		w = cmd.OutOrStdout()
	case OutputStderr:
		w = cmd.ErrOrStderr()
	default:
		return nil, fmt.Errorf("invalid log output: %s", output)
	}

	format, err := flags.GetString(FormatFlagName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormatFlagName, err)
	}
	return New(w, format, level)
}

// New returns a logger writing format-encoded records at or above level to w.
func New(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

// ParseLevel converts a level flag value to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
