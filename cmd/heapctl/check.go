package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace>...",
		Short: "Replay traces with full consistency checking",
		Long: `The check command replays each trace with the heap consistency checker
bracketing every allocator operation. The first invariant violation dumps
the heap and aborts, localizing the faulty operation.

Example:
  heapctl check traces/mini.rep`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runTraces(args, true); err != nil {
				return err
			}
			printInfo("all invariants held\n")
			return nil
		},
	}
}
