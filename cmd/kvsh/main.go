package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/myuser/txkv/internal/metrics"
	"github.com/myuser/txkv/internal/sql"
	"github.com/myuser/txkv/internal/storage"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to store config JSON file")
		table      = flag.String("table", sql.DefaultTable, "Table name statements address")
		showLimit  = flag.Uint("show-limit", 0, "Records printed by SELECT * without LIMIT (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging to stderr")
	)
	flag.Parse()

	cfg := storage.DefaultConfig()
	if *configFile != "" {
		loaded, err := storage.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *showLimit > 0 {
		cfg.ShowLimit = uint32(*showLimit)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store := storage.NewStore(
		storage.WithConfig[string](cfg),
		storage.WithLogger[string](logger),
		storage.WithOutput[string](os.Stdout),
	)
	ex := sql.NewExecutor(store, *table, cfg.ShowLimit)

	logger.Debug("kvsh ready", "table", *table, "degree", cfg.Degree, "show_limit", cfg.ShowLimit)
	repl(os.Stdin, os.Stdout, ex, store)
}

func repl(in io.Reader, out io.Writer, ex *sql.Executor, store *storage.Store[string]) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "kv(%d)> ", store.Depth())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSuffix(line, ";")
		if line == "" {
			continue
		}

		switch line {
		case `\q`:
			return
		case `\depth`:
			fmt.Fprintln(out, store.Depth())
			continue
		case `\metrics`:
			snap := metrics.Snapshot()
			for _, name := range metrics.Names() {
				fmt.Fprintf(out, "%s %d\n", name, snap[name])
			}
			continue
		}

		plan, rows, err := ex.Run(line)
		if err != nil {
			fmt.Fprintf(out, "ERROR: %v\n", err)
			continue
		}
		printResult(out, plan, rows)
	}
}

func printResult(out io.Writer, plan sql.PlanNode, rows []sql.Row) {
	switch plan.Type() {
	case sql.NodePointGet, sql.NodeKeys, sql.NodeValues, sql.NodeCount:
		for _, r := range rows {
			fmt.Fprintln(out, strings.Join(r, " : "))
		}
		if plan.Type() == sql.NodePointGet && len(rows) == 0 {
			fmt.Fprintln(out, "(nil)")
			return
		}
		fmt.Fprintf(out, "(%d rows)\n", len(rows))
	case sql.NodeShow:
	default:
		fmt.Fprintln(out, "OK")
	}
}
