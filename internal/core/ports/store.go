package ports

// CacheStore maps task ids to the signature of their last successful run.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Get returns the stored signature for taskID and whether one exists.
	// The backing file is loaded on first access.
	Get(taskID string) (string, bool, error)

	// Set records the signature for taskID.
	Set(taskID, signature string) error

	// Flush persists all entries if anything changed since the last flush.
	Flush() error

	// Clear removes every entry, in memory and on disk.
	Clear() error
}
