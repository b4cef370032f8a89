// Package x_log wraps zerolog with lipgloss-styled console output and
// lumberjack file rotation.
package x_log

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ErrInvalidLevelValue = errors.New("invalid_level_value")

type Level = zerolog.Level

const (
	TraceLevel = zerolog.TraceLevel
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

var (
	mu      sync.Mutex
	rotator *lumberjack.Logger
)

//---------------------
// INITIALIZATION
//---------------------

// Init loads config via LoadConfig("") and installs the root logger.
func Init() {
	cfg, err := LoadConfig("")
	if err != nil {
		c := DefaultConfig()
		cfg = &c
	}
	InitWithConfig(cfg, "")
}

// InitWithConfig installs the root logger built from cfg.
// module, when set, is attached to every line.
func InitWithConfig(cfg *Config, module string) {
	c := *cfg
	ApplyDefaults(&c)

	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}

	var writers []io.Writer
	if c.ToConsole {
		styles := DefaultStylesByName(c.Style)
		styles.Out = os.Stderr
		writers = append(writers, ConsoleWriterWithStyles(styles))
	}
	if c.ToFile {
		rotator = &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		if c.ColoredFile {
			styles := DefaultStylesByName(c.Style)
			styles.Out = rotator
			writers = append(writers, ConsoleWriterWithStyles(styles))
		} else {
			writers = append(writers, rotator)
		}
	}

	zerolog.SetGlobalLevel(ToLogLevel(c.Level))
	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if module != "" {
		ctx = ctx.Str("module", module)
	}
	log.Logger = ctx.Logger()
}

// SetOutput redirects the root logger to w as plain JSON lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.Logger = log.Logger.Output(w)
}

// Close flushes and closes the rotating file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

//---------------------
// SCOPED LOGGERS
//---------------------

// New returns a child of the root logger tagged with module.
func New(module string) zerolog.Logger {
	return log.Logger.With().Str("module", module).Logger()
}

// With returns a child of the root logger carrying one extra field.
func With(key string, value any) zerolog.Logger {
	return log.Logger.With().Interface(key, value).Logger()
}

type ctxKey struct{}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in ctx or the root logger.
func From(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}

//---------------------
// DEFAULT LOGGER SHORTCUTS
//---------------------

func Trace() *zerolog.Event { return log.Logger.Trace() }
func Debug() *zerolog.Event { return log.Logger.Debug() }
func Info() *zerolog.Event  { return log.Logger.Info() }
func Warn() *zerolog.Event  { return log.Logger.Warn() }
func Error() *zerolog.Event { return log.Logger.Error() }

//---------------------
// UTILITIES
//---------------------

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, ErrInvalidLevelValue
	}
}

// ToLogLevel is ParseLevel with an info fallback.
func ToLogLevel(s string) Level {
	lvl, _ := ParseLevel(s)
	return lvl
}
