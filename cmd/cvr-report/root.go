package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the benchmark report CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cvr-report",
		Short: "Conversion-rate benchmark metrics and report exports",
		Long: `cvr-report computes conversion-rate benchmarking metrics against the
B2B SaaS average and top-quartile reference rates, and exports the
comparison report as PNG or PDF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewMetricsCmd())
	cmd.AddCommand(NewExportCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
