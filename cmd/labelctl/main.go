// Command labelctl drives the label pipeline from a terminal. A
// keyboard-wedge scanner types each code followed by Enter, so "scan" reads
// one code per line from stdin.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "labelctl",
		Short:         "Scan codes and print 4x6 labels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCmd(), newRenderCmd())
	return root
}
