package domain

const (
	// CacheFileName is the default name of the signature cache file.
	CacheFileName = ".smelt"

	// SettingsFileName is the default name of the settings file.
	SettingsFileName = "smelt.settings"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "smelt.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
