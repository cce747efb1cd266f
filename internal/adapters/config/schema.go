package config

// Smeltfile represents the structure of the smelt.yaml configuration file.
// Every key is optional.
type Smeltfile struct {
	CacheFile     string `yaml:"cache_file"`
	SettingsFile  string `yaml:"settings_file"`
	Flush         string `yaml:"flush"`
	Output        string `yaml:"output"`
	LogFormat     string `yaml:"log_format"`
	Summary       bool   `yaml:"summary"`
	PTY           bool   `yaml:"pty"`
	WatchDebounce string `yaml:"watch_debounce"`
}
