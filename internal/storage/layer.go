package storage

import (
	"github.com/google/uuid"
)

// Entry is what a transaction layer records for a key: either a value set
// at that level or a tombstone. A key missing from the layer means the level
// never touched it, which is a different state from Deleted.
type Entry[T comparable] struct {
	Value   T
	Deleted bool
}

// Present returns an entry holding v.
func Present[T comparable](v T) Entry[T] {
	return Entry[T]{Value: v}
}

// Tombstone returns an entry marking its key deleted.
func Tombstone[T comparable]() Entry[T] {
	return Entry[T]{Deleted: true}
}

// layer is one level of uncommitted diff on the transaction stack.
type layer[T comparable] struct {
	id      string
	entries map[string]Entry[T]
}

func newLayer[T comparable]() *layer[T] {
	return &layer[T]{
		id:      uuid.Must(uuid.NewV7()).String(),
		entries: make(map[string]Entry[T]),
	}
}

// mergeInto copies every entry of l into dst, overwriting dst's entry for the
// same key. Tombstones are copied as tombstones.
func (l *layer[T]) mergeInto(dst *layer[T]) {
	for k, e := range l.entries {
		dst.entries[k] = e
	}
}
