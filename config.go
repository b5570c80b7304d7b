package ctrace

import (
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultEnvPrefix is the environment variable prefix read by ConfigFromEnv.
const DefaultEnvPrefix = "CTRACE"

// Config configures a Tracer. The zero value is usable: every unset field
// takes its default when passed to New or Init.
type Config struct {
	// Stream receives encoded records. Defaults to standard output.
	Stream io.Writer
	// Encoder serializes records. Defaults to JSONEncoder.
	Encoder Encoder
	// Reporter overrides Stream and Encoder when set.
	Reporter Reporter
	// Debug admits debug spans and debug-level log entries.
	Debug bool
	// MultiEvent reports spans on start, on every log entry and on finish.
	MultiEvent bool
	// Propagators are appended after the defaults, per format key.
	Propagators map[string][]Propagator
	// Logger receives the tracer's own diagnostics. Defaults to a no-op.
	Logger *zap.Logger
	// Clock stamps spans and log entries. Defaults to the real clock.
	Clock clockz.Clock
	// Generator produces identifiers. Defaults to RandomGenerator.
	Generator IDGenerator
	// Metrics records tracer activity when set.
	Metrics *Metrics
}

// DefaultConfig returns a configuration writing JSON records to standard
// output in single-event mode with debug off.
func DefaultConfig() Config {
	return Config{
		Stream:  os.Stdout,
		Encoder: JSONEncoder{},
	}
}

// EnvConfig is the subset of Config settable from the environment.
type EnvConfig struct {
	Debug      bool   `envconfig:"DEBUG" default:"false"`
	MultiEvent bool   `envconfig:"MULTI_EVENT" default:"false"`
	Output     string `envconfig:"OUTPUT" default:"stdout"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev     bool   `envconfig:"LOG_DEV" default:"false"`
}

// ConfigFromEnv builds a Config from <prefix>_DEBUG, <prefix>_MULTI_EVENT,
// <prefix>_OUTPUT (stdout or stderr), <prefix>_LOG_LEVEL and <prefix>_LOG_DEV.
// An empty prefix uses DefaultEnvPrefix.
func ConfigFromEnv(prefix string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	var env EnvConfig
	if err := envconfig.Process(prefix, &env); err != nil {
		return Config{}, fmt.Errorf("failed to load tracer config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Debug = env.Debug
	cfg.MultiEvent = env.MultiEvent

	switch env.Output {
	case "stdout":
		cfg.Stream = os.Stdout
	case "stderr":
		cfg.Stream = os.Stderr
	default:
		return Config{}, fmt.Errorf("unsupported tracer output %q", env.Output)
	}

	logger, err := NewLogger(env.LogLevel, env.LogDev)
	if err != nil {
		return Config{}, err
	}
	cfg.Logger = logger
	return cfg, nil
}

// NewLogger builds a zap logger for tracer diagnostics: JSON in production,
// colored console output in development. Diagnostics go to standard error so
// they never interleave with span records on standard output.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoding := "json"
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if development {
		encoding = "console"
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(l),
		Development:       development,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !development,
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("ctrace"), nil
}
