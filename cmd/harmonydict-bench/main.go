// Command harmonydict-bench drives pkg/dict through the full concurrent
// phase protocol against a synthetic workload: NumWorkers goroutines each
// intern a batch of keys overlapping a shared prefix (realizing the shape
// of Scenario S2 at whatever scale the flags ask for), then the process
// promotes every worker's deferred nodes and transitions back to the
// sequential regime, repeating for a configurable number of rounds while
// serving Prometheus metrics. It follows cmd/tempo/main.go's shape: parse
// flags, load a config file overlay, initialise the logger, run.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harmonylang/harmonydict/internal/config"
	"github.com/harmonylang/harmonydict/pkg/dict"
	hlog "github.com/harmonylang/harmonydict/pkg/util/log"
	"github.com/harmonylang/harmonydict/pkg/workerpool"
)

// extractConfigFile reads -config.file out of args without consuming or
// validating the rest, by parsing with a throwaway FlagSet that ignores
// unknown flags one at a time (flag.Parse stops at the first error).
func extractConfigFile(args []string) string {
	var configFile string
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configFile, "config.file", "", "")

	for len(args) > 0 {
		_ = fs.Parse(args)
		args = args[1:]
	}
	return configFile
}

func main() {
	// Extract -config.file first, the same two-phase dance cmd/tempo's
	// loadConfig does: a throwaway FlagSet reads just that flag so it can
	// be used to build the real FlagSet's defaults before flag.Parse runs
	// for real.
	configFile := extractConfigFile(os.Args[1:])

	var (
		keysPerWorker int
		sharedKeys    int
		rounds        int
	)
	fs := flag.CommandLine
	fs.String("config.file", "", "yaml config file to overlay onto flag defaults")
	fs.IntVar(&keysPerWorker, "keys-per-worker", 1000, "distinct keys each worker interns per round")
	fs.IntVar(&sharedKeys, "shared-keys", 500, "keys shared across every worker's batch, out of keys-per-worker")
	fs.IntVar(&rounds, "rounds", 1, "number of concurrent/quiesce/promote rounds to run")

	cfg, err := config.Load(fs, configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Parse()

	hlog.SetLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		level.Error(hlog.Logger).Log("msg", "invalid config", "err", err)
		os.Exit(1)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			level.Info(hlog.Logger).Log("msg", "serving metrics", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				level.Error(hlog.Logger).Log("msg", "metrics server exited", "err", err)
			}
		}()
	}

	level.Info(hlog.Logger).Log("msg", "starting harmonydict-bench",
		"num_workers", cfg.NumWorkers, "initial_size", cfg.InitialSize,
		"keys_per_worker", keysPerWorker, "shared_keys", sharedKeys, "rounds", rounds)

	tbl := dict.New(dict.Config{InitialSize: cfg.InitialSize, NumWorkers: cfg.NumWorkers}, nil, nil)
	defer tbl.Delete()

	pool := workerpool.New(cfg.NumWorkers)

	for round := 0; round < rounds; round++ {
		start := time.Now()
		runRound(pool, tbl, round, keysPerWorker, sharedKeys)
		level.Info(hlog.Logger).Log("msg", "round complete", "round", round, "elapsed", time.Since(start))
	}
}

// runRound realizes one full SetConcurrent -> (Find burst) -> quiesce ->
// MakeStable barrier -> SetSequential cycle.
func runRound(pool *workerpool.Pool, tbl *dict.Table, round, keysPerWorker, sharedKeys int) {
	tbl.SetConcurrent()

	err := pool.RunPhase(context.Background(), func(_ context.Context, worker int) error {
		alloc := dict.NewArenaAllocator(worker, nil)
		for i := 0; i < keysPerWorker; i++ {
			var key string
			if i < sharedKeys {
				key = fmt.Sprintf("round-%d-shared-%d", round, i)
			} else {
				key = fmt.Sprintf("round-%d-worker-%d-key-%d", round, worker, i)
			}
			tbl.Find(alloc, []byte(key))
		}
		return nil
	})
	if err != nil {
		level.Error(hlog.Logger).Log("msg", "find phase failed", "err", err)
	}

	// The promotion barrier itself is inherently sequential per worker
	// (each worker only promotes the deferred nodes routed to it), but
	// nothing forbids running the NumWorkers calls concurrently since they
	// touch disjoint bucket ranges; RunPhase again gives that for free.
	totals := make([]int, pool.NumWorkers())
	err = pool.RunPhase(context.Background(), func(_ context.Context, worker int) error {
		totals[worker] = tbl.MakeStable(worker)
		return nil
	})
	if err != nil {
		level.Error(hlog.Logger).Log("msg", "promotion phase failed", "err", err)
	}

	total := 0
	for _, n := range totals {
		total += n
	}
	tbl.SetSequential(total)
}
