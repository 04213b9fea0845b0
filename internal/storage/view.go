package storage

import (
	"fmt"

	"github.com/google/btree"
)

// visible folds the diff stack onto the base, oldest layer first. The result
// is a copy-on-write clone, so mutating it never touches committed state.
func (s *Store[T]) visible() *btree.BTreeG[item[T]] {
	view := s.tree.Clone()
	for _, l := range s.txns {
		for k, e := range l.entries {
			if e.Deleted {
				view.Delete(item[T]{key: k})
			} else {
				view.ReplaceOrInsert(item[T]{key: k, value: e.Value})
			}
		}
	}
	return view
}

// Snapshot returns the visible state as a plain map.
func (s *Store[T]) Snapshot() map[string]T {
	view := s.visible()
	out := make(map[string]T, view.Len())
	view.Ascend(func(it item[T]) bool {
		out[it.key] = it.value
		return true
	})
	return out
}

func (s *Store[T]) Keys() []string {
	view := s.visible()
	keys := make([]string, 0, view.Len())
	view.Ascend(func(it item[T]) bool {
		keys = append(keys, it.key)
		return true
	})
	return keys
}

// KeysWithValue returns the visible keys whose value equals value.
func (s *Store[T]) KeysWithValue(value T) []string {
	var keys []string
	s.visible().Ascend(func(it item[T]) bool {
		if it.value == value {
			keys = append(keys, it.key)
		}
		return true
	})
	return keys
}

func (s *Store[T]) Values() []T {
	view := s.visible()
	values := make([]T, 0, view.Len())
	view.Ascend(func(it item[T]) bool {
		values = append(values, it.value)
		return true
	})
	return values
}

func (s *Store[T]) Count() int {
	return s.visible().Len()
}

func (s *Store[T]) CountWithValue(value T) int {
	n := 0
	s.visible().Ascend(func(it item[T]) bool {
		if it.value == value {
			n++
		}
		return true
	})
	return n
}

// Show prints up to limit visible records as "key : value", in key order.
func (s *Store[T]) Show(limit uint32) {
	var printed uint32
	s.visible().Ascend(func(it item[T]) bool {
		if printed >= limit {
			return false
		}
		fmt.Fprintf(s.out, "%s : %v\n", it.key, it.value)
		printed++
		return true
	})
}
