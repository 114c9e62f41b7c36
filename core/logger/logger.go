package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	// Sensible default so packages can log before Init runs (tests, early boot).
	log = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Init configures the process-wide logger. Level is one of zerolog's level
// strings (debug, info, warn, error).
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

// withFields folds variadic args into the event. Args are consumed as
// "key", value pairs; bare errors attach as the error field.
func withFields(e *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			e = e.Err(err)
			continue
		}
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			e = e.Interface(key, args[i+1])
			i++
			continue
		}
		e = e.Interface("detail", args[i])
	}
	return e
}

func Debug(msg string, args ...any) { withFields(log.Debug(), args).Msg(msg) }
func Info(msg string, args ...any)  { withFields(log.Info(), args).Msg(msg) }
func Warn(msg string, args ...any)  { withFields(log.Warn(), args).Msg(msg) }
func Error(msg string, args ...any) { withFields(log.Error(), args).Msg(msg) }
func Fatal(msg string, args ...any) { withFields(log.Fatal(), args).Msg(msg) }
