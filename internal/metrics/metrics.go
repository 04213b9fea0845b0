package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Process-wide counter registry. Keys are counter names, values are *int64.
var registry sync.Map

// Inc increments a counter by 1.
func Inc(name string) {
	Add(name, 1)
}

// Add adds delta to a counter.
func Add(name string, delta int64) {
	val, ok := registry.Load(name)
	if !ok {
		newVal := new(int64)
		val, _ = registry.LoadOrStore(name, newVal)
	}
	atomic.AddInt64(val.(*int64), delta)
}

// Get returns the current value of a counter.
func Get(name string) int64 {
	val, ok := registry.Load(name)
	if !ok {
		return 0
	}
	return atomic.LoadInt64(val.(*int64))
}

// Snapshot copies every counter.
func Snapshot() map[string]int64 {
	snapshot := make(map[string]int64)
	registry.Range(func(key, value any) bool {
		snapshot[key.(string)] = atomic.LoadInt64(value.(*int64))
		return true
	})
	return snapshot
}

// Names returns the registered counter names in sorted order.
func Names() []string {
	var names []string
	registry.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}
