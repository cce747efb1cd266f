package domain

import (
	"path/filepath"
	"time"
)

// FlushMode controls when the cache store writes to disk.
type FlushMode string

const (
	// FlushOnSessionEnd writes the cache once when the session ends.
	FlushOnSessionEnd FlushMode = "session"
	// FlushAlways writes the cache after every mutation.
	FlushAlways FlushMode = "always"
)

// LogFormat selects the log handler.
type LogFormat string

const (
	// LogFormatPretty renders human-readable, colored lines.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON renders one JSON object per line.
	LogFormatJSON LogFormat = "json"
)

// DefaultWatchDebounce is the default quiet period before a watch rebuild.
const DefaultWatchDebounce = 200 * time.Millisecond

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory holding smelt.yaml, or the working directory if there is none.
	Root string
	// CacheFile is the absolute path of the signature cache.
	CacheFile string
	// SettingsFile is the absolute path of the NAME=VALUE settings file.
	SettingsFile string
	Flush        FlushMode
	// Output is the renderer mode: auto, tui or linear.
	Output        string
	LogFormat     LogFormat
	Summary       bool
	PTY           bool
	WatchDebounce time.Duration
}

// DefaultConfig returns the configuration used when no smelt.yaml is present.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:          root,
		CacheFile:     filepath.Join(root, CacheFileName),
		SettingsFile:  filepath.Join(root, SettingsFileName),
		Flush:         FlushOnSessionEnd,
		Output:        "auto",
		LogFormat:     LogFormatPretty,
		WatchDebounce: DefaultWatchDebounce,
	}
}
