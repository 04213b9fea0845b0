package sql

import (
	"errors"
	"testing"
)

func TestParseTransactionStatements(t *testing.T) {
	tests := []struct {
		sql  string
		want NodeType
	}{
		{"BEGIN", NodeBegin},
		{"START TRANSACTION", NodeBegin},
		{"COMMIT", NodeCommit},
		{"ROLLBACK", NodeRollback},
	}

	for _, tt := range tests {
		plan, err := ParseToPlan(tt.sql)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tt.sql, err)
		}
		if plan.Type() != tt.want {
			t.Errorf("%s: want node type %d, got %d (%s)", tt.sql, tt.want, plan.Type(), plan)
		}
	}
}

func TestParseSelect(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT v FROM kv WHERE k = 'alice'", "PointGet(kv, alice)"},
		{"SELECT * FROM kv WHERE k = 'alice'", "PointGet(kv, alice)"},
		{"SELECT k FROM kv", "Keys(kv)"},
		{"SELECT k FROM kv WHERE v = '25'", "Keys(kv, v=25)"},
		{"SELECT v FROM kv", "Values(kv)"},
		{"SELECT COUNT(*) FROM kv", "Count(kv)"},
		{"SELECT COUNT(*) FROM kv WHERE v = 25", "Count(kv, v=25)"},
		{"SELECT * FROM kv", "Show(kv, 0)"},
		{"SELECT * FROM kv LIMIT 10", "Show(kv, 10)"},
	}

	for _, tt := range tests {
		plan, err := ParseToPlan(tt.sql)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tt.sql, err)
		}
		if got := plan.String(); got != tt.want {
			t.Errorf("%s: want %s, got %s", tt.sql, tt.want, got)
		}
	}
}

func TestParseShowLimit(t *testing.T) {
	plan, err := ParseToPlan("SELECT * FROM kv LIMIT 0")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	show, ok := plan.(*ShowNode)
	if !ok {
		t.Fatalf("Expected ShowNode, got %T", plan)
	}
	if !show.HasLimit || show.Limit != 0 {
		t.Errorf("want explicit limit 0, got %+v", show)
	}

	plan, _ = ParseToPlan("SELECT * FROM kv")
	if plan.(*ShowNode).HasLimit {
		t.Error("no LIMIT clause should leave HasLimit false")
	}
}

func TestParseInsert(t *testing.T) {
	plan, err := ParseToPlan("INSERT INTO kv (v, k) VALUES ('30', 'alice'), ('31', 'bob')")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ins, ok := plan.(*SetNode)
	if !ok {
		t.Fatalf("Expected SetNode, got %T", plan)
	}
	if ins.Table != "kv" {
		t.Errorf("Expected table 'kv', got '%s'", ins.Table)
	}
	want := []KV{{"alice", "30"}, {"bob", "31"}}
	if len(ins.Pairs) != len(want) {
		t.Fatalf("Expected %d pairs, got %d", len(want), len(ins.Pairs))
	}
	for i := range want {
		if ins.Pairs[i] != want[i] {
			t.Errorf("pair %d: want %+v, got %+v", i, want[i], ins.Pairs[i])
		}
	}

	plan, err = ParseToPlan("INSERT INTO kv VALUES ('carol', 7)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p := plan.(*SetNode).Pairs[0]; p != (KV{"carol", "7"}) {
		t.Errorf("positional insert: got %+v", p)
	}
}

func TestParseUpdateDelete(t *testing.T) {
	plan, err := ParseToPlan("UPDATE kv SET v = 'x' WHERE k = 'a'")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	set, ok := plan.(*SetNode)
	if !ok {
		t.Fatalf("Expected SetNode, got %T", plan)
	}
	if len(set.Pairs) != 1 || set.Pairs[0] != (KV{"a", "x"}) {
		t.Errorf("update: got %+v", set.Pairs)
	}

	plan, err = ParseToPlan("DELETE FROM kv WHERE k = 'a'")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	del, ok := plan.(*DelNode)
	if !ok {
		t.Fatalf("Expected DelNode, got %T", plan)
	}
	if del.Key != "a" || del.Table != "kv" {
		t.Errorf("delete: got %+v", del)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		sql  string
		want error
	}{
		{"DELETE FROM kv", ErrMissingKey},
		{"DELETE FROM kv WHERE v = 'a'", ErrMissingKey},
		{"UPDATE kv SET k = 'b' WHERE k = 'a'", ErrUnsupported},
		{"SELECT k FROM kv WHERE k > 'a'", ErrUnsupported},
		{"SELECT name FROM kv", ErrUnsupported},
		{"INSERT INTO kv (k, name) VALUES ('a', 'b')", ErrUnsupported},
		{"SELECT * FROM kv LIMIT 1, 2", ErrUnsupported},
	}

	for _, tt := range tests {
		if _, err := ParseToPlan(tt.sql); !errors.Is(err, tt.want) {
			t.Errorf("%s: want %v, got %v", tt.sql, tt.want, err)
		}
	}

	if _, err := ParseToPlan("NOT SQL AT ALL"); err == nil {
		t.Error("expected parse error")
	}
}
