package logger

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements Logger on top of a zerolog.Logger
type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{
		logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger writes human readable lines to stderr
func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}, level)
}

// NewNop discards everything
func NewNop() *ZerologAdapter {
	return &ZerologAdapter{logger: zerolog.Nop()}
}

// Level reports the minimum level that is written
func (z *ZerologAdapter) Level() zerolog.Level {
	return z.logger.GetLevel()
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	z.write(z.logger.Debug(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	z.write(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	z.write(z.logger.Warn(), component, fields).Msg(message)
}

// Error logs err; a "message" field, when present, replaces the default text
func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	message := "operation failed"
	if custom, ok := fields["message"].(string); ok {
		message = custom
	}
	z.write(z.logger.Error().Err(err), component, fields).Msg(message)
}

// write attaches the component and fields in key order so output is stable
func (z *ZerologAdapter) write(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != "message" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := fields[k].(type) {
		case time.Duration:
			event = event.Dur(k, v)
		case error:
			event = event.AnErr(k, v)
		default:
			event = event.Interface(k, v)
		}
	}
	return event
}
