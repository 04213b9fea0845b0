package sql

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// Column names of the single logical table.
const (
	ColKey   = "k"
	ColValue = "v"
)

var (
	ErrUnsupported  = errors.New("unsupported statement")
	ErrUnknownTable = errors.New("unknown table")
	ErrMissingKey   = errors.New("statement needs WHERE k = <literal>")
)

// ParseToPlan parses a SQL string and returns a logical plan.
func ParseToPlan(sql string) (PlanNode, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	switch s := stmt.(type) {
	case *sqlparser.Begin:
		return &BeginNode{}, nil
	case *sqlparser.Commit:
		return &CommitNode{}, nil
	case *sqlparser.Rollback:
		return &RollbackNode{}, nil
	case *sqlparser.Select:
		return buildSelectPlan(s)
	case *sqlparser.Insert:
		return buildInsertPlan(s)
	case *sqlparser.Update:
		return buildUpdatePlan(s)
	case *sqlparser.Delete:
		return buildDeletePlan(s)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, stmt)
	}
}

func buildSelectPlan(stmt *sqlparser.Select) (PlanNode, error) {
	if len(stmt.From) != 1 {
		return nil, fmt.Errorf("%w: SELECT needs exactly one table", ErrUnsupported)
	}
	table, err := tableName(stmt.From)
	if err != nil {
		return nil, err
	}

	var col string
	var val *string
	if stmt.Where != nil {
		c, v, err := equality(stmt.Where.Expr)
		if err != nil {
			return nil, err
		}
		col, val = c, &v
	}

	if len(stmt.SelectExprs) != 1 {
		return nil, fmt.Errorf("%w: select exactly one of *, k, v, COUNT(*)", ErrUnsupported)
	}

	switch e := stmt.SelectExprs[0].(type) {
	case *sqlparser.StarExpr:
		switch col {
		case ColKey:
			return &PointGetNode{Table: table, Key: *val}, nil
		case "":
			node := &ShowNode{Table: table}
			if stmt.Limit != nil {
				limit, err := rowLimit(stmt.Limit)
				if err != nil {
					return nil, err
				}
				node.Limit, node.HasLimit = limit, true
			}
			return node, nil
		}

	case *sqlparser.AliasedExpr:
		switch x := e.Expr.(type) {
		case *sqlparser.ColName:
			switch name := x.Name.Lowered(); {
			case col == ColKey && (name == ColKey || name == ColValue):
				return &PointGetNode{Table: table, Key: *val}, nil
			case name == ColKey && col == "":
				return &KeysNode{Table: table}, nil
			case name == ColKey && col == ColValue:
				return &KeysNode{Table: table, Filter: val}, nil
			case name == ColValue && col == "":
				return &ValuesNode{Table: table}, nil
			}
		case *sqlparser.FuncExpr:
			if x.Name.Lowered() != "count" {
				break
			}
			switch col {
			case "":
				return &CountNode{Table: table}, nil
			case ColValue:
				return &CountNode{Table: table, Filter: val}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, sqlparser.String(stmt))
}

func buildInsertPlan(stmt *sqlparser.Insert) (PlanNode, error) {
	table := sqlparser.String(stmt.Table)

	// Without a column list the first value is the key, as in (k, v).
	keyIdx, valIdx := 0, 1
	if len(stmt.Columns) > 0 {
		keyIdx, valIdx = -1, -1
		for i, col := range stmt.Columns {
			switch col.Lowered() {
			case ColKey:
				keyIdx = i
			case ColValue:
				valIdx = i
			default:
				return nil, fmt.Errorf("%w: unknown column %s", ErrUnsupported, col.String())
			}
		}
		if keyIdx < 0 || valIdx < 0 {
			return nil, fmt.Errorf("%w: INSERT needs both %s and %s", ErrUnsupported, ColKey, ColValue)
		}
	}

	rows, ok := stmt.Rows.(sqlparser.Values)
	if !ok {
		return nil, fmt.Errorf("%w: INSERT from SELECT", ErrUnsupported)
	}

	node := &SetNode{Table: table}
	for _, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("%w: each row needs exactly 2 values, got %d", ErrUnsupported, len(row))
		}
		k, err := literal(row[keyIdx])
		if err != nil {
			return nil, err
		}
		v, err := literal(row[valIdx])
		if err != nil {
			return nil, err
		}
		node.Pairs = append(node.Pairs, KV{Key: k, Value: v})
	}
	return node, nil
}

func buildUpdatePlan(stmt *sqlparser.Update) (PlanNode, error) {
	table, err := tableName(stmt.TableExprs)
	if err != nil {
		return nil, err
	}
	if len(stmt.Exprs) != 1 || stmt.Exprs[0].Name.Name.Lowered() != ColValue {
		return nil, fmt.Errorf("%w: UPDATE may only SET %s", ErrUnsupported, ColValue)
	}
	v, err := literal(stmt.Exprs[0].Expr)
	if err != nil {
		return nil, err
	}
	k, err := keyPredicate(stmt.Where)
	if err != nil {
		return nil, err
	}
	return &SetNode{Table: table, Pairs: []KV{{Key: k, Value: v}}}, nil
}

func buildDeletePlan(stmt *sqlparser.Delete) (PlanNode, error) {
	table, err := tableName(stmt.TableExprs)
	if err != nil {
		return nil, err
	}
	k, err := keyPredicate(stmt.Where)
	if err != nil {
		return nil, err
	}
	return &DelNode{Table: table, Key: k}, nil
}

func tableName(exprs sqlparser.TableExprs) (string, error) {
	if len(exprs) != 1 {
		return "", fmt.Errorf("%w: exactly one table expected", ErrUnsupported)
	}
	aliased, ok := exprs[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return "", fmt.Errorf("%w: complex FROM clauses", ErrUnsupported)
	}
	return sqlparser.String(aliased.Expr), nil
}

// keyPredicate extracts the key from WHERE k = <literal>.
func keyPredicate(where *sqlparser.Where) (string, error) {
	if where == nil {
		return "", ErrMissingKey
	}
	col, val, err := equality(where.Expr)
	if err != nil {
		return "", err
	}
	if col != ColKey {
		return "", ErrMissingKey
	}
	return val, nil
}

// equality accepts only <column> = <literal>.
func equality(expr sqlparser.Expr) (string, string, error) {
	cmp, ok := expr.(*sqlparser.ComparisonExpr)
	if !ok || cmp.Operator != sqlparser.EqualStr {
		return "", "", fmt.Errorf("%w: WHERE supports only col = literal", ErrUnsupported)
	}
	col, ok := cmp.Left.(*sqlparser.ColName)
	if !ok {
		return "", "", fmt.Errorf("%w: left side of = must be a column", ErrUnsupported)
	}
	name := col.Name.Lowered()
	if name != ColKey && name != ColValue {
		return "", "", fmt.Errorf("%w: unknown column %s", ErrUnsupported, col.Name.String())
	}
	val, err := literal(cmp.Right)
	if err != nil {
		return "", "", err
	}
	return name, val, nil
}

func literal(expr sqlparser.Expr) (string, error) {
	v, ok := expr.(*sqlparser.SQLVal)
	if !ok {
		return "", fmt.Errorf("%w: expected literal, got %s", ErrUnsupported, sqlparser.String(expr))
	}
	return string(v.Val), nil
}

func rowLimit(limit *sqlparser.Limit) (uint32, error) {
	if limit.Offset != nil {
		return 0, fmt.Errorf("%w: LIMIT with OFFSET", ErrUnsupported)
	}
	n, err := literal(limit.Rowcount)
	if err != nil {
		return 0, err
	}
	rows, err := strconv.ParseUint(n, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad LIMIT %q", ErrUnsupported, n)
	}
	return uint32(rows), nil
}
