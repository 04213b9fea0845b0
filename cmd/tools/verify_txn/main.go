package main

import (
	"fmt"
	"os"

	"github.com/myuser/txkv/internal/sql"
	"github.com/myuser/txkv/internal/storage"
)

type step struct {
	sql  string
	want []sql.Row // checked only for statements with a result set
}

type scenario struct {
	name  string
	steps []step
}

func row(cols ...string) []sql.Row { return []sql.Row{cols} }

var none = []sql.Row{}

var scenarios = []scenario{
	{
		name: "nested shadowing",
		steps: []step{
			{sql: "INSERT INTO kv VALUES ('k', '1')"},
			{sql: "BEGIN"},
			{sql: "UPDATE kv SET v = '2' WHERE k = 'k'"},
			{sql: "BEGIN"},
			{sql: "DELETE FROM kv WHERE k = 'k'"},
			{sql: "SELECT v FROM kv WHERE k = 'k'", want: none},
			{sql: "ROLLBACK"},
			{sql: "SELECT v FROM kv WHERE k = 'k'", want: row("k", "2")},
			{sql: "ROLLBACK"},
			{sql: "SELECT v FROM kv WHERE k = 'k'", want: row("k", "1")},
		},
	},
	{
		name: "merge then discard",
		steps: []step{
			{sql: "INSERT INTO kv VALUES ('k', '1')"},
			{sql: "BEGIN"},
			{sql: "DELETE FROM kv WHERE k = 'k'"},
			{sql: "BEGIN"},
			{sql: "UPDATE kv SET v = '2' WHERE k = 'k'"},
			{sql: "COMMIT"},
			{sql: "SELECT v FROM kv WHERE k = 'k'", want: row("k", "2")},
			{sql: "ROLLBACK"},
			{sql: "SELECT v FROM kv WHERE k = 'k'", want: row("k", "1")},
		},
	},
	{
		name: "commit flattens",
		steps: []step{
			{sql: "BEGIN"},
			{sql: "INSERT INTO kv VALUES ('k', 'v')"},
			{sql: "COMMIT"},
			{sql: "ROLLBACK"},
			{sql: "SELECT v FROM kv WHERE k = 'k'", want: row("k", "v")},
			{sql: "SELECT COUNT(*) FROM kv", want: row("1")},
		},
	},
	{
		name: "unmatched commit and rollback",
		steps: []step{
			{sql: "INSERT INTO kv VALUES ('a', 'x'), ('b', 'x')"},
			{sql: "COMMIT"},
			{sql: "ROLLBACK"},
			{sql: "SELECT COUNT(*) FROM kv WHERE v = 'x'", want: row("2")},
		},
	},
}

func equal(a, b []sql.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func runScenario(sc scenario) bool {
	store := storage.NewStore[string]()
	ex := sql.NewExecutor(store, "", 0)

	for i, st := range sc.steps {
		_, rows, err := ex.Run(st.sql)
		if err != nil {
			fmt.Printf("FAIL: %s step %d (%s): %v\n", sc.name, i+1, st.sql, err)
			return false
		}
		if st.want != nil && !equal(rows, st.want) {
			fmt.Printf("FAIL: %s step %d (%s): expected %v, got %v\n", sc.name, i+1, st.sql, st.want, rows)
			return false
		}
	}
	if store.Depth() != 0 {
		fmt.Printf("FAIL: %s left %d open transactions\n", sc.name, store.Depth())
		return false
	}
	fmt.Printf("PASS: %s\n", sc.name)
	return true
}

func main() {
	failed := 0
	for _, sc := range scenarios {
		if !runScenario(sc) {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("%d of %d scenarios failed\n", failed, len(scenarios))
		os.Exit(1)
	}
	fmt.Println("All scenarios passed.")
}
