package sql

import "fmt"

type NodeType int

const (
	NodeBegin NodeType = iota
	NodeCommit
	NodeRollback
	NodePointGet
	NodeSet
	NodeDel
	NodeKeys
	NodeValues
	NodeCount
	NodeShow
)

type PlanNode interface {
	Type() NodeType
	String() string
}

type BeginNode struct{}

func (n *BeginNode) Type() NodeType { return NodeBegin }
func (n *BeginNode) String() string { return "Begin" }

type CommitNode struct{}

func (n *CommitNode) Type() NodeType { return NodeCommit }
func (n *CommitNode) String() string { return "Commit" }

type RollbackNode struct{}

func (n *RollbackNode) Type() NodeType { return NodeRollback }
func (n *RollbackNode) String() string { return "Rollback" }

type PointGetNode struct {
	Table string
	Key   string
}

func (n *PointGetNode) Type() NodeType { return NodePointGet }
func (n *PointGetNode) String() string { return fmt.Sprintf("PointGet(%s, %s)", n.Table, n.Key) }

// KV is one key/value assignment of a SetNode.
type KV struct {
	Key   string
	Value string
}

// SetNode writes every pair in order. Produced by INSERT and UPDATE.
type SetNode struct {
	Table string
	Pairs []KV
}

func (n *SetNode) Type() NodeType { return NodeSet }
func (n *SetNode) String() string { return fmt.Sprintf("Set(%s, %d)", n.Table, len(n.Pairs)) }

type DelNode struct {
	Table string
	Key   string
}

func (n *DelNode) Type() NodeType { return NodeDel }
func (n *DelNode) String() string { return fmt.Sprintf("Del(%s, %s)", n.Table, n.Key) }

// KeysNode lists keys. A nil Filter means every visible key.
type KeysNode struct {
	Table  string
	Filter *string
}

func (n *KeysNode) Type() NodeType { return NodeKeys }
func (n *KeysNode) String() string {
	if n.Filter != nil {
		return fmt.Sprintf("Keys(%s, v=%s)", n.Table, *n.Filter)
	}
	return fmt.Sprintf("Keys(%s)", n.Table)
}

type ValuesNode struct {
	Table string
}

func (n *ValuesNode) Type() NodeType { return NodeValues }
func (n *ValuesNode) String() string { return fmt.Sprintf("Values(%s)", n.Table) }

type CountNode struct {
	Table  string
	Filter *string
}

func (n *CountNode) Type() NodeType { return NodeCount }
func (n *CountNode) String() string {
	if n.Filter != nil {
		return fmt.Sprintf("Count(%s, v=%s)", n.Table, *n.Filter)
	}
	return fmt.Sprintf("Count(%s)", n.Table)
}

// ShowNode prints records to the store's output sink. Without a LIMIT clause
// the executor's default applies.
type ShowNode struct {
	Table    string
	Limit    uint32
	HasLimit bool
}

func (n *ShowNode) Type() NodeType { return NodeShow }
func (n *ShowNode) String() string { return fmt.Sprintf("Show(%s, %d)", n.Table, n.Limit) }
