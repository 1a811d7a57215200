package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultDirName  = ".seventeenlands"
	defaultFilename = "seventeenlands.log"

	// colorEnvVar disables colored console output when set to "false".
	colorEnvVar = "SEVENTEENLANDS_COLOR_LOGS"
)

type registryConfig struct {
	// dir is the directory holding the rotating log file
	// default: ~/.seventeenlands
	dir string

	// filename is the log file name inside dir
	// default: seventeenlands.log
	filename string

	// level is the minimum level for both console and file output
	// default: slog.LevelInfo
	level slog.Level

	// console receives the colored console stream
	// default: os.Stderr
	console io.Writer

	// color toggles ANSI colors on the console stream
	// default: true unless SEVENTEENLANDS_COLOR_LOGS=false
	color bool
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		dir:      defaultDir(),
		filename: defaultFilename,
		level:    slog.LevelInfo,
		console:  os.Stderr,
		color:    !strings.EqualFold(os.Getenv(colorEnvVar), "false"),
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// No resolvable home; fall back to the working directory.
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

type Option func(c *registryConfig)

func WithDir(dir string) Option {
	return func(c *registryConfig) {
		c.dir = dir
	}
}

func WithFilename(name string) Option {
	return func(c *registryConfig) {
		c.filename = name
	}
}

func WithLevel(level slog.Level) Option {
	return func(c *registryConfig) {
		c.level = level
	}
}

func WithConsole(w io.Writer) Option {
	return func(c *registryConfig) {
		c.console = w
	}
}

func WithColor(enabled bool) Option {
	return func(c *registryConfig) {
		c.color = enabled
	}
}

// registry is the process-wide named-logger table. It is constructed once,
// by the first Init or Named call, and handed out to consumers through
// Named; nothing else in the library reaches for it implicitly.
type registry struct {
	mu      sync.Mutex
	base    *slog.Logger
	logFile string
	loggers map[string]Logger
}

var (
	initOnce sync.Once
	global   registry
)

// Init configures the process-wide logger registry: a colored console
// stream plus a rotating file under the configured directory, with 7-day
// retention. Init is idempotent; only the first call's options take
// effect, and that call logs the log file location exactly once.
//
// Calling Init is optional: the first Named call initializes the registry
// with defaults.
func Init(opts ...Option) error {
	var err error
	initOnce.Do(func() {
		err = global.init(opts)
	})
	return err
}

// Named returns the registry logger for the given logical name, creating
// and caching it on first use. All loggers share the registry's handlers;
// the name appears as a "name" attribute on every record.
func Named(name string) Logger {
	_ = Init()

	global.mu.Lock()
	defer global.mu.Unlock()

	if log, ok := global.loggers[name]; ok {
		return log
	}
	log := NewSlog(global.base.With("name", name))
	global.loggers[name] = log
	return log
}

func (r *registry) init(opts []Option) error {
	config := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&config)
	}

	consoleHandler := tint.NewHandler(config.console, &tint.Options{
		Level:      config.level,
		TimeFormat: time.TimeOnly,
		NoColor:    !config.color,
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggers = make(map[string]Logger)

	if err := os.MkdirAll(config.dir, 0o755); err != nil {
		// Keep the console stream alive even without a usable log dir.
		r.base = slog.New(consoleHandler)
		return fmt.Errorf("create log directory: %w", err)
	}

	r.logFile = filepath.Join(config.dir, config.filename)
	fileHandler := slog.NewTextHandler(
		&lumberjack.Logger{
			Filename:   r.logFile,
			MaxBackups: 7,
			MaxAge:     7, // days
		},
		&slog.HandlerOptions{Level: config.level},
	)

	r.base = slog.New(newMultiHandler(consoleHandler, fileHandler))
	r.base.Info("Saving logs to " + r.logFile)
	return nil
}
