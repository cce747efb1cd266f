// Package config provides the configuration loader for smelt.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader looking for domain.ConfigFileName.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: domain.ConfigFileName}
}

// Load walks up from cwd looking for the configuration file.
// Without one, the defaults rooted at cwd are returned.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	path, found, err := l.find(cwd)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultConfig(cwd), nil
	}
	return Load(path)
}

func (l *FileConfigLoader) find(cwd string) (string, bool, error) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, l.Filename)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads a configuration file and resolves it against its directory.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Smeltfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	return resolve(filepath.Dir(path), &file)
}

func resolve(root string, file *Smeltfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig(root)

	if file.CacheFile != "" {
		cfg.CacheFile = rooted(root, file.CacheFile)
	}
	if file.SettingsFile != "" {
		cfg.SettingsFile = rooted(root, file.SettingsFile)
	}

	switch domain.FlushMode(file.Flush) {
	case "":
	case domain.FlushOnSessionEnd, domain.FlushAlways:
		cfg.Flush = domain.FlushMode(file.Flush)
	default:
		return nil, invalid("flush", file.Flush)
	}

	switch file.Output {
	case "":
	case "auto", "tui", "linear":
		cfg.Output = file.Output
	default:
		return nil, invalid("output", file.Output)
	}

	switch domain.LogFormat(file.LogFormat) {
	case "":
	case domain.LogFormatPretty, domain.LogFormatJSON:
		cfg.LogFormat = domain.LogFormat(file.LogFormat)
	default:
		return nil, invalid("log_format", file.LogFormat)
	}

	if file.WatchDebounce != "" {
		d, err := time.ParseDuration(file.WatchDebounce)
		if err != nil || d < 0 {
			return nil, invalid("watch_debounce", file.WatchDebounce)
		}
		cfg.WatchDebounce = d
	}

	cfg.Summary = file.Summary
	cfg.PTY = file.PTY
	return cfg, nil
}

func rooted(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func invalid(key, value string) error {
	err := zerr.Wrap(domain.ErrConfigParseFailed, "invalid value for "+key)
	return zerr.With(zerr.With(err, "key", key), "value", value)
}
