package storage

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/btree"
	"github.com/myuser/txkv/internal/metrics"
)

// DefaultShowLimit is the number of records Show prints when the host has no
// preference.
const DefaultShowLimit = 100

// Store implements KV on top of a committed btree and a stack of diff layers.
//
// Store is not safe for concurrent use. Callers sharing one instance must
// serialize access themselves.
type Store[T comparable] struct {
	tree *btree.BTreeG[item[T]]

	// Diff stack. The last element is the innermost (active) transaction.
	txns []*layer[T]

	degree int
	out    io.Writer
	logger *slog.Logger
}

type item[T comparable] struct {
	key   string
	value T
}

func lessItem[T comparable](a, b item[T]) bool {
	return a.key < b.key
}

// Option configures a Store.
type Option[T comparable] func(*Store[T])

// WithOutput sets the sink Show writes to. Defaults to os.Stdout.
func WithOutput[T comparable](w io.Writer) Option[T] {
	return func(s *Store[T]) { s.out = w }
}

// WithLogger sets the logger for transaction lifecycle events.
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(s *Store[T]) { s.logger = logger }
}

// WithConfig applies cfg. Zero fields keep their defaults.
func WithConfig[T comparable](cfg Config) Option[T] {
	return func(s *Store[T]) {
		if cfg.Degree > 1 {
			s.degree = cfg.Degree
		}
	}
}

// NewStore returns an empty store with no open transaction.
func NewStore[T comparable](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		degree: defaultDegree,
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tree = btree.NewG(s.degree, lessItem[T])
	return s
}

// Get returns the value visible for key.
func (s *Store[T]) Get(key string) (T, bool) {
	metrics.Inc("store_get_total")

	for i := len(s.txns) - 1; i >= 0; i-- {
		if e, ok := s.txns[i].entries[key]; ok {
			if e.Deleted {
				var zero T
				return zero, false
			}
			return e.Value, true
		}
	}

	it, ok := s.tree.Get(item[T]{key: key})
	if !ok {
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set writes key. Inside a transaction only the innermost layer changes.
func (s *Store[T]) Set(key string, value T) {
	metrics.Inc("store_set_total")

	if top := s.active(); top != nil {
		top.entries[key] = Present(value)
		return
	}
	s.tree.ReplaceOrInsert(item[T]{key: key, value: value})
}

// Del deletes key. Inside a transaction this records a tombstone so the
// deletion shadows outer layers and the base.
func (s *Store[T]) Del(key string) {
	metrics.Inc("store_del_total")

	if top := s.active(); top != nil {
		top.entries[key] = Tombstone[T]()
		return
	}
	s.tree.Delete(item[T]{key: key})
}

// Begin opens a nested transaction.
func (s *Store[T]) Begin() {
	metrics.Inc("txn_begin_total")

	l := newLayer[T]()
	s.txns = append(s.txns, l)
	s.logger.Debug("begin", "txn", l.id, "depth", len(s.txns))
}

// Commit closes the innermost transaction, folding its diff into the next
// layer out, or into the base when it was the outermost one.
func (s *Store[T]) Commit() {
	top := s.pop()
	if top == nil {
		metrics.Inc("txn_commit_noop_total")
		s.logger.Debug("commit with no open transaction")
		return
	}
	metrics.Inc("txn_commit_total")

	if parent := s.active(); parent != nil {
		top.mergeInto(parent)
		s.logger.Debug("commit", "txn", top.id, "into", parent.id,
			"entries", len(top.entries), "depth", len(s.txns))
		return
	}

	for k, e := range top.entries {
		if e.Deleted {
			s.tree.Delete(item[T]{key: k})
		} else {
			s.tree.ReplaceOrInsert(item[T]{key: k, value: e.Value})
		}
	}
	s.logger.Debug("commit", "txn", top.id, "into", "base",
		"entries", len(top.entries), "depth", 0)
}

// Rollback discards the innermost transaction.
func (s *Store[T]) Rollback() {
	top := s.pop()
	if top == nil {
		metrics.Inc("txn_rollback_noop_total")
		s.logger.Debug("rollback with no open transaction")
		return
	}
	metrics.Inc("txn_rollback_total")
	s.logger.Debug("rollback", "txn", top.id,
		"discarded", len(top.entries), "depth", len(s.txns))
}

// Depth returns the number of open transactions.
func (s *Store[T]) Depth() int {
	return len(s.txns)
}

func (s *Store[T]) active() *layer[T] {
	if len(s.txns) == 0 {
		return nil
	}
	return s.txns[len(s.txns)-1]
}

func (s *Store[T]) pop() *layer[T] {
	n := len(s.txns)
	if n == 0 {
		return nil
	}
	top := s.txns[n-1]
	s.txns[n-1] = nil
	s.txns = s.txns[:n-1]
	return top
}

var _ KV[string] = (*Store[string])(nil)
