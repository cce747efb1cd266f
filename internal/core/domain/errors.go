package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingArtifact is returned when a declared source does not exist at signature time.
	ErrMissingArtifact = zerr.New("missing artifact")

	// ErrNilArtifact is returned when a nil artifact is passed to Use.
	ErrNilArtifact = zerr.New("nil artifact")

	// ErrActionFailed is returned when a shell action exits with a non-zero status.
	ErrActionFailed = zerr.New("action failed")

	// ErrCopyFailed is returned when a copy action fails.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrDeleteFailed is returned when a delete action fails.
	ErrDeleteFailed = zerr.New("failed to delete path")

	// ErrNoActiveTask is returned when Use, Setting or an action is called outside of a task body.
	ErrNoActiveTask = zerr.New("no active task")

	// ErrTaskAlreadyExists is returned when a task id is registered twice.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrInvalidTaskName is returned when a task id is empty or contains whitespace.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrNilTaskBody is returned when a task is registered without a body.
	ErrNilTaskBody = zerr.New("task body is nil")

	// ErrUnknownSetting is returned when an undefined setting is read or assigned.
	ErrUnknownSetting = zerr.New("unknown setting")

	// ErrSettingAlreadyDefined is returned when a setting is defined twice.
	ErrSettingAlreadyDefined = zerr.New("setting already defined")

	// ErrInvalidSettingName is returned when a setting name is empty or contains '=' or whitespace.
	ErrInvalidSettingName = zerr.New("invalid setting name")

	// ErrMalformedAssignment is returned when a NAME=VALUE assignment cannot be parsed.
	ErrMalformedAssignment = zerr.New("malformed assignment, expected NAME=VALUE")

	// ErrCacheReadFailed is returned when the cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache file")

	// ErrCacheWriteFailed is returned when the cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache file")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWalkFailed is returned when enumerating a directory tree fails.
	ErrWalkFailed = zerr.New("failed to walk directory tree")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch files")
)
