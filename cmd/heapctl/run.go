package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heaplab/heapkit/heap"
	"github.com/heaplab/heapkit/internal/arena"
	"github.com/heaplab/heapkit/trace"
)

var (
	runChunkSize uint64
	runLookahead int
	runCapacity  uint64
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().Uint64Var(&runChunkSize, "chunk-size", 0, "Minimum heap extension in bytes")
	cmd.Flags().IntVar(&runLookahead, "lookahead", 0, "Best-fit search lookahead bound")
	cmd.Flags().Uint64Var(&runCapacity, "capacity", 0, "Arena reservation in bytes")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>...",
		Short: "Replay traces and report utilization",
		Long: `The run command replays each workload trace against a fresh heap and
reports operation counts, heap growth, and peak utilization.

Example:
  heapctl run traces/binary.rep
  heapctl run --json traces/*.rep
  heapctl run --chunk-size 8192 traces/coalesce.rep`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraces(args, false)
		},
	}
}

func runTraces(paths []string, checkEvery bool) error {
	for _, path := range paths {
		res, err := replay(path, checkEvery)
		if err != nil {
			return err
		}
		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(struct {
				Trace string
				*trace.Result
			}{path, res}); err != nil {
				return err
			}
			continue
		}
		printInfo("%s: %d ops, heap %d bytes, peak live %d bytes, utilization %.1f%%\n",
			path, res.Ops, res.HeapSize, res.PeakLive, res.Utilization*100)
		printVerbose("  %d grows (%d bytes), %d splits, %d/%d/%d coalesces (next/prev/both)\n",
			res.Stats.GrowCalls, res.Stats.GrowBytes, res.Stats.SplitCount,
			res.Stats.CoalesceNext, res.Stats.CoalescePrev, res.Stats.CoalesceBoth)
	}
	return nil
}

func replay(path string, checkEvery bool) (*trace.Result, error) {
	tr, err := trace.ParseFile(path)
	if err != nil {
		return nil, err
	}
	printVerbose("parsed %s: %d ops over %d ids\n", path, len(tr.Ops), tr.IDs)

	ar, err := arena.New(runCapacity)
	if err != nil {
		return nil, err
	}
	defer ar.Close()

	cfg := heap.DefaultConfig
	cfg.CheckEvery = checkEvery
	if runChunkSize != 0 {
		cfg.ChunkSize = runChunkSize
	}
	if runLookahead != 0 {
		cfg.FitLookahead = runLookahead
	}

	res, err := trace.Run(heap.New(ar, &cfg), tr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
