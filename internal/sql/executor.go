package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/myuser/txkv/internal/storage"
)

// DefaultTable is the table name statements address unless configured.
const DefaultTable = "kv"

// Row representing a result row.
type Row []string

// Executor runs plans against a single string-valued store exposed as one
// table.
type Executor struct {
	store     storage.KV[string]
	table     string
	showLimit uint32
}

// NewExecutor returns an Executor. An empty table means DefaultTable and a
// zero showLimit means storage.DefaultShowLimit.
func NewExecutor(store storage.KV[string], table string, showLimit uint32) *Executor {
	if table == "" {
		table = DefaultTable
	}
	if showLimit == 0 {
		showLimit = storage.DefaultShowLimit
	}
	return &Executor{store: store, table: table, showLimit: showLimit}
}

// Run parses sql and executes the resulting plan.
func (e *Executor) Run(sql string) (PlanNode, []Row, error) {
	plan, err := ParseToPlan(sql)
	if err != nil {
		return nil, nil, err
	}
	rows, err := e.Execute(plan)
	return plan, rows, err
}

// Execute executes a logical plan against the store. Statements without a
// result set return nil rows.
func (e *Executor) Execute(plan PlanNode) ([]Row, error) {
	switch n := plan.(type) {
	case *BeginNode:
		e.store.Begin()
		return nil, nil
	case *CommitNode:
		e.store.Commit()
		return nil, nil
	case *RollbackNode:
		e.store.Rollback()
		return nil, nil
	case *PointGetNode:
		return e.executePointGet(n)
	case *SetNode:
		return e.executeSet(n)
	case *DelNode:
		if err := e.checkTable(n.Table); err != nil {
			return nil, err
		}
		e.store.Del(n.Key)
		return nil, nil
	case *KeysNode:
		return e.executeKeys(n)
	case *ValuesNode:
		if err := e.checkTable(n.Table); err != nil {
			return nil, err
		}
		values := e.store.Values()
		rows := make([]Row, 0, len(values))
		for _, v := range values {
			rows = append(rows, Row{v})
		}
		return rows, nil
	case *CountNode:
		return e.executeCount(n)
	case *ShowNode:
		if err := e.checkTable(n.Table); err != nil {
			return nil, err
		}
		limit := e.showLimit
		if n.HasLimit {
			limit = n.Limit
		}
		e.store.Show(limit)
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: plan node %T", ErrUnsupported, plan)
	}
}

func (e *Executor) checkTable(table string) error {
	if !strings.EqualFold(strings.Trim(table, "`"), e.table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return nil
}

func (e *Executor) executePointGet(n *PointGetNode) ([]Row, error) {
	if err := e.checkTable(n.Table); err != nil {
		return nil, err
	}
	val, ok := e.store.Get(n.Key)
	if !ok {
		return []Row{}, nil
	}
	return []Row{{n.Key, val}}, nil
}

func (e *Executor) executeSet(n *SetNode) ([]Row, error) {
	if err := e.checkTable(n.Table); err != nil {
		return nil, err
	}
	for _, p := range n.Pairs {
		e.store.Set(p.Key, p.Value)
	}
	return nil, nil
}

func (e *Executor) executeKeys(n *KeysNode) ([]Row, error) {
	if err := e.checkTable(n.Table); err != nil {
		return nil, err
	}
	var keys []string
	if n.Filter != nil {
		keys = e.store.KeysWithValue(*n.Filter)
	} else {
		keys = e.store.Keys()
	}
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Row{k})
	}
	return rows, nil
}

func (e *Executor) executeCount(n *CountNode) ([]Row, error) {
	if err := e.checkTable(n.Table); err != nil {
		return nil, err
	}
	var count int
	if n.Filter != nil {
		count = e.store.CountWithValue(*n.Filter)
	} else {
		count = e.store.Count()
	}
	return []Row{{strconv.Itoa(count)}}, nil
}
