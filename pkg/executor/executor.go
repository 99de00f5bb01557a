package executor

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/pluck/pkg/acquire"
	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/filesystem"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/section"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/rs/zerolog"
)

// Acquirer performs the I/O for one item
type Acquirer interface {
	Acquire(ctx context.Context, item types.TransferItem) (int64, error)
}

// Options contains configuration for the executor
type Options struct {
	// Filesystem operations interface for testing
	FS types.FS
	// Fetcher used for remote items, defaults to an HTTP fetcher
	Fetcher acquire.Fetcher
	// Acquirer replaces the default acquire.Acquirer built from FS and Fetcher
	Acquirer Acquirer

	Workers  int
	FailFast bool
	DryRun   bool
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
}

// Executor acquires the items of section trees
type Executor struct {
	acquirer Acquirer
	workers  int
	failFast bool
	dryRun   bool
	logger   zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	acq := opts.Acquirer
	if acq == nil {
		fs := opts.FS
		if fs == nil {
			fs = filesystem.NewOS()
		}
		acq = acquire.New(fs, opts.Fetcher)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Executor{
		acquirer: acq,
		workers:  workers,
		failFast: opts.FailFast,
		dryRun:   opts.DryRun,
		logger:   logger,
	}
}

// Execute acquires every item of the tree rooted at root. Each call
// acquires everything again.
func (e *Executor) Execute(ctx context.Context, root *section.Section) *types.Report {
	return e.ExecuteItems(ctx, root.Flatten())
}

// ExecuteItems acquires items and reports on each of them in input order
func (e *Executor) ExecuteItems(ctx context.Context, items []types.TransferItem) *types.Report {
	report := types.NewReport(e.dryRun)
	logger := e.logger.With().Str("run", report.RunID).Logger()

	logger.Info().
		Int("items", len(items)).
		Int("workers", e.workers).
		Bool("dry_run", e.dryRun).
		Bool("fail_fast", e.failFast).
		Msg("Starting run")

	r := &run{
		executor: e,
		logger:   logger,
		results:  make([]types.ItemResult, len(items)),
	}

	if e.workers <= 1 || len(items) <= 1 {
		r.sequential(ctx, items)
	} else {
		r.concurrent(ctx, items)
	}

	report.Results = r.results
	report.Duration = time.Since(report.Started)

	logger.Info().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Int("skipped", report.Skipped()).
		Dur("duration", report.Duration).
		Msg("Run finished")

	return report
}

// run holds the state of one execution
type run struct {
	executor *Executor
	logger   zerolog.Logger
	results  []types.ItemResult
	stopped  atomic.Bool
}

func (r *run) sequential(ctx context.Context, items []types.TransferItem) {
	for i, item := range items {
		r.results[i] = r.process(ctx, item)
	}
}

// concurrent groups items by destination path and hands whole groups to a
// bounded pool of workers
func (r *run) concurrent(ctx context.Context, items []types.TransferItem) {
	groups := groupByDestination(items)

	workers := r.executor.workers
	if workers > len(groups) {
		workers = len(groups)
	}

	in := make(chan []int, len(groups))
	for _, g := range groups {
		in <- g
	}
	close(in)

	var wg sync.WaitGroup
	wg.Add(workers)
	for n := 0; n < workers; n++ {
		go r.worker(ctx, n, in, items, &wg)
	}
	wg.Wait()
}

func (r *run) worker(ctx context.Context, n int, in <-chan []int, items []types.TransferItem, wg *sync.WaitGroup) {
	defer wg.Done()

	r.logger.Trace().Int("worker_id", n).Msg("Worker started")
	for group := range in {
		for _, idx := range group {
			r.results[idx] = r.process(ctx, items[idx])
		}
	}
	r.logger.Trace().Int("worker_id", n).Msg("Worker done")
}

// process acquires one item unless the run was stopped
func (r *run) process(ctx context.Context, item types.TransferItem) types.ItemResult {
	start := time.Now()

	if ctx.Err() != nil {
		return types.ItemResult{Item: item, Skipped: true, Message: "Canceled before start"}
	}
	if r.stopped.Load() {
		return types.ItemResult{Item: item, Skipped: true, Message: "Skipped after an earlier failure"}
	}

	logger := r.logger.With().
		Str("source", item.SourcePath).
		Str("destination", item.DestinationPath()).
		Str("kind", item.Kind()).
		Logger()

	if r.executor.dryRun {
		logger.Debug().Msg("Dry run, not acquiring item")
		return types.ItemResult{
			Item:     item,
			Skipped:  true,
			Message:  "Dry run - no changes made",
			Duration: time.Since(start),
		}
	}

	n, err := r.executor.acquirer.Acquire(ctx, item)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrCanceled) {
			logger.Warn().Err(err).Msg("Item canceled")
			return types.ItemResult{
				Item:     item,
				Skipped:  true,
				Error:    err,
				Message:  "Canceled",
				Duration: time.Since(start),
			}
		}

		logger.Error().Err(err).Msg("Item failed")
		if r.executor.failFast {
			r.stopped.Store(true)
		}
		return types.ItemResult{
			Item:     item,
			Error:    err,
			Message:  err.Error(),
			Duration: time.Since(start),
		}
	}

	logger.Debug().
		Int64("bytes", n).
		Dur("duration", time.Since(start)).
		Msg("Item acquired")

	return types.ItemResult{
		Item:     item,
		Success:  true,
		Bytes:    n,
		Duration: time.Since(start),
	}
}

// groupByDestination returns item indexes grouped by destination path, in
// order of first appearance. A local item whose source is another item's
// destination joins that item's group, so chained copies keep declaration
// order. Items without a derivable path get a group of their own.
func groupByDestination(items []types.TransferItem) [][]int {
	dests := make(map[string]bool, len(items))
	for _, item := range items {
		if p := item.DestinationPath(); p != "" {
			dests[filepath.Clean(p)] = true
		}
	}

	// union-find over item indexes; the root is the lowest index
	parent := make([]int, len(items))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	owner := make(map[string]int)
	link := func(i int, path string) {
		j, ok := owner[path]
		if !ok {
			owner[path] = i
			return
		}
		ri, rj := find(i), find(j)
		if ri < rj {
			parent[rj] = ri
		} else if rj < ri {
			parent[ri] = rj
		}
	}

	for i, item := range items {
		if p := item.DestinationPath(); p != "" {
			link(i, filepath.Clean(p))
		}
		if item.IsLocal {
			if src := filepath.Clean(item.SourcePath); dests[src] {
				link(i, src)
			}
		}
	}

	var groups [][]int
	index := make(map[int]int)
	for i := range items {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
