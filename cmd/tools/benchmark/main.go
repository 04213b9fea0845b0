package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/myuser/txkv/internal/metrics"
	"github.com/myuser/txkv/internal/storage"
)

type result struct {
	ops      int
	maxDepth int
	elapsed  time.Duration
}

// workload drives ops random operations against store. Transactions nest up
// to maxDepth and every open transaction is closed before returning.
func workload(store *storage.Store[int], rng *rand.Rand, ops, keys, maxDepth int) result {
	var res result
	start := time.Now()

	for i := 0; i < ops; i++ {
		key := fmt.Sprintf("user%d", rng.Intn(keys))
		switch p := rng.Float32(); {
		case p < 0.40:
			store.Get(key)
		case p < 0.75:
			store.Set(key, rng.Intn(1000))
		case p < 0.85:
			store.Del(key)
		case p < 0.92:
			if store.Depth() < maxDepth {
				store.Begin()
			}
		case p < 0.97:
			store.Commit()
		default:
			store.Rollback()
		}
		if d := store.Depth(); d > res.maxDepth {
			res.maxDepth = d
		}
		res.ops++
	}
	for store.Depth() > 0 {
		store.Commit()
	}

	res.elapsed = time.Since(start)
	return res
}

func main() {
	ops := flag.Int("ops", 1000000, "Number of operations")
	keys := flag.Int("keys", 10000, "Size of the key space")
	depth := flag.Int("depth", 8, "Maximum transaction nesting")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	fmt.Printf("Starting Benchmark: %d ops, %d keys, max depth %d\n", *ops, *keys, *depth)

	store := storage.NewStore(storage.WithOutput[int](io.Discard))
	res := workload(store, rand.New(rand.NewSource(*seed)), *ops, *keys, *depth)

	fmt.Println("Benchmark Finished.")
	fmt.Printf("Total Ops: %d\n", res.ops)
	fmt.Printf("Max Depth: %d\n", res.maxDepth)
	fmt.Printf("Final Keys: %d\n", store.Count())
	fmt.Printf("Commits: %d, Rollbacks: %d\n", metrics.Get("txn_commit_total"), metrics.Get("txn_rollback_total"))
	fmt.Printf("Duration: %v\n", res.elapsed)
	fmt.Printf("Ops/s: %.2f\n", float64(res.ops)/res.elapsed.Seconds())
}
