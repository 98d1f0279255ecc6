package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const simpleTimeFormat = "02-01-2006 15:04:05"

// New constructs a zerolog logger according to the runtime environment.
// Development environments receive human readable console logs while other
// environments emit JSON for easy ingestion.
func New(env, level string, writers ...io.Writer) (*zerolog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = simpleTimeFormat
	zerolog.DurationFieldUnit = time.Millisecond

	var output io.Writer
	if len(writers) > 0 {
		output = io.MultiWriter(writers...)
	} else {
		output = consoleWriter(env)
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(lvl)
	return &logger, nil
}

// NewWithRunLog builds the standard logger and tees every event into the run
// log file at path, opened in append mode so consecutive campaign executions
// accumulate. The file always receives the JSON stream regardless of env, so
// the copy mailed to the admin stays machine readable. The caller owns the
// returned closer.
func NewWithRunLog(env, level, path string) (*zerolog.Logger, io.Closer, error) {
	file, err := OpenRunLog(path)
	if err != nil {
		return nil, nil, err
	}

	log, err := New(env, level, consoleWriter(env), file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return log, file, nil
}

// OpenRunLog opens the campaign log file for appending, creating it when
// absent.
func OpenRunLog(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open run log: %w", err)
	}
	return file, nil
}

func consoleWriter(env string) io.Writer {
	if strings.EqualFold(env, "development") || strings.EqualFold(env, "dev") {
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: simpleTimeFormat}
		cw.FieldsExclude = []string{zerolog.TimestampFieldName}
		return cw
	}
	return os.Stdout
}

func parseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, err
	}
	return lvl, nil
}
