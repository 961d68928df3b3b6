package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger for the given -v count:
// warnings by default, then info, debug, and trace. Records go to the
// console on stderr and, when it can be opened, to the state-dir log
// file as well.
func SetupLogger(verbosity int) {
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 3:
		level = zerolog.TraceLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var sink io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	file, logPath, fileErr := openLogFile()
	if fileErr == nil {
		sink = io.MultiWriter(sink, file)
	}

	ctx := zerolog.New(sink).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Log file unavailable, console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logPath).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// WithFields creates a logger with multiple fields attached.
func WithFields(fields map[string]interface{}) zerolog.Logger {
	ctx := log.Logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return ctx.Logger()
}

// openLogFile opens webgen's log file under the XDG state directory,
// creating parent directories as needed.
func openLogFile() (*os.File, string, error) {
	logPath, err := xdg.StateFile(filepath.Join("webgen", "webgen.log"))
	if err != nil {
		return nil, logPath, err
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, logPath, err
	}
	return file, logPath, nil
}

// LogOperationStart records the start of a timed operation. The
// returned func logs completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().Str("operation", operation).Dur("duration", time.Since(start)).Msg("Operation completed")
	}
}
