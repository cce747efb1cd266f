package domain

// Command is a shell command line run by the Shell action.
type Command struct {
	// Line is passed to `sh -c`.
	Line string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	Env []string
}

// FileOptions selects which observations a File artifact captures.
type FileOptions struct {
	// Content folds a digest of the file bytes into the identity.
	Content bool
	// ModTime folds the modification time into the identity.
	ModTime bool
	// Size folds the byte size into the identity.
	Size bool
}

// DefaultFileOptions captures content and size but not the modification time.
func DefaultFileOptions() FileOptions {
	return FileOptions{Content: true, Size: true}
}
