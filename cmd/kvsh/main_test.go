package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/myuser/txkv/internal/sql"
	"github.com/myuser/txkv/internal/storage"
)

func TestREPL(t *testing.T) {
	var out bytes.Buffer
	store := storage.NewStore(storage.WithOutput[string](&out))
	ex := sql.NewExecutor(store, "", 0)

	script := strings.Join([]string{
		"INSERT INTO kv VALUES ('a', '1');",
		"BEGIN",
		"DELETE FROM kv WHERE k = 'a'",
		"SELECT v FROM kv WHERE k = 'a'",
		`\depth`,
		"ROLLBACK",
		"SELECT v FROM kv WHERE k = 'a'",
		"SELECT * FROM kv",
		"SELECT nonsense",
		`\q`,
		"INSERT INTO kv VALUES ('never', 'run')",
	}, "\n")

	repl(strings.NewReader(script), &out, ex, store)

	got := out.String()
	for _, want := range []string{
		"kv(1)> ",
		"(nil)",
		"a : 1\n(1 rows)",
		"ERROR: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if _, ok := store.Get("never"); ok {
		t.Error("statements after \\q should not run")
	}
	if store.Depth() != 0 {
		t.Errorf("depth: want 0, got %d", store.Depth())
	}
}
