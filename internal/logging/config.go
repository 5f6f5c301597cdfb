package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/molmark/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	// Command and PID are attached to every record and name the log file.
	Command string
	PID     int
}

// DefaultConfig returns a disabled info-level Config for the current process.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig reads the logging_* keys of the global configuration.
// debug forces the debug level; quiet forces error unless debug is also set.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", cfg.Enabled)
	cfg.Level = effectiveLevel(config.Get("logging_level", cfg.Level))
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	return cfg
}

func effectiveLevel(configured string) string {
	if config.GetBool("debug", false) {
		return "debug"
	}
	if config.GetBool("quiet", false) {
		return "error"
	}
	return configured
}
