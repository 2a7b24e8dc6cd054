package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <trace>",
		Short: "Show detailed allocator statistics for a trace",
		Long: `The stats command replays a trace and emits the full allocator counter
set: call counts, growth, splits, coalesces, and byte totals.

Example:
  heapctl stats traces/binary.rep
  heapctl stats traces/binary.rep --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatsCmd(args[0])
		},
	}
}

func runStatsCmd(path string) error {
	res, err := replay(path, false)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Stats)
	}

	s := res.Stats
	printInfo("calls:     malloc=%d free=%d realloc=%d calloc=%d\n",
		s.MallocCalls, s.FreeCalls, s.ReallocCalls, s.CallocCalls)
	printInfo("growth:    %d calls, %d bytes\n", s.GrowCalls, s.GrowBytes)
	printInfo("splits:    %d\n", s.SplitCount)
	printInfo("coalesces: next=%d prev=%d both=%d\n",
		s.CoalesceNext, s.CoalescePrev, s.CoalesceBoth)
	printInfo("bytes:     allocated=%d freed=%d peak-live=%d\n",
		s.BytesAllocated, s.BytesFreed, s.PeakPayload)
	return nil
}
