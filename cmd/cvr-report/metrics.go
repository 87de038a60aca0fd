package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
)

// NewMetricsCmd creates the metrics command: compute the full bundle for one
// input and print it as JSON.
func NewMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Compute the benchmark metrics bundle and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, b, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}
			m, err := b.Compute(in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("traffic", "t", 0, "Monthly traffic (visits or leads)")
	cmd.Flags().IntP("conversions", "c", 0, "Monthly conversions")
	cmd.Flags().String("type", "demos", "Conversion type: demos or signups")
	cmd.Flags().Float64P("value", "v", 0, "Monetary value per conversion (0 suppresses revenue metrics)")
	cmd.Flags().Float64("b2b-average", benchmark.Default.B2BAverage, "B2B average benchmark rate in percent")
	cmd.Flags().Float64("top-25", benchmark.Default.Top25Percent, "Top-quartile benchmark rate in percent")
	_ = cmd.MarkFlagRequired("traffic")
	_ = cmd.MarkFlagRequired("conversions")
}

func inputFromFlags(cmd *cobra.Command) (benchmark.Input, benchmark.Benchmarks, error) {
	traffic, _ := cmd.Flags().GetInt("traffic")
	conversions, _ := cmd.Flags().GetInt("conversions")
	convType, _ := cmd.Flags().GetString("type")
	value, _ := cmd.Flags().GetFloat64("value")
	avg, _ := cmd.Flags().GetFloat64("b2b-average")
	top, _ := cmd.Flags().GetFloat64("top-25")

	in := benchmark.Input{
		MonthlyTraffic:     traffic,
		MonthlyConversions: conversions,
		ConversionType:     benchmark.ConversionType(convType),
		ConversionValue:    value,
	}
	b := benchmark.Benchmarks{B2BAverage: avg, Top25Percent: top}
	if err := b.Validate(); err != nil {
		return benchmark.Input{}, benchmark.Benchmarks{}, err
	}
	return in, b, nil
}
