package storage

// KV is the operation set of a transactional key-value store holding values
// of type T. Absence is a normal result, never an error.
type KV[T comparable] interface {
	// Get resolves key against the open transactions, innermost first,
	// then the committed base.
	Get(key string) (T, bool)

	// Set writes into the innermost open transaction, or the base if none.
	Set(key string, value T)

	// Del records a tombstone in the innermost open transaction, or erases
	// from the base if none.
	Del(key string)

	// Enumeration over the visible state.
	Keys() []string
	KeysWithValue(value T) []string
	Values() []T
	Count() int
	CountWithValue(value T) int

	// Show writes up to limit "key : value" lines to the output sink.
	Show(limit uint32)

	// Transaction lifecycle. Commit and Rollback with nothing open are no-ops.
	Begin()
	Commit()
	Rollback()
	Depth() int
}
