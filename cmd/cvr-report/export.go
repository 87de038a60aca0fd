package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joelkehle/cvr-benchmark/internal/export"
	"github.com/joelkehle/cvr-benchmark/internal/report"
	"github.com/joelkehle/cvr-benchmark/internal/telemetry"
)

// NewExportCmd creates the export command: render the full report and write
// it to disk as PNG or PDF.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the benchmark report as a PNG or PDF file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, b, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			chromePath, _ := cmd.Flags().GetString("chrome-path")
			showAverage, _ := cmd.Flags().GetBool("always-show-average")

			logger := telemetry.NewLogger("info", "console")
			defer logger.Sync()

			exporter := export.New(b, report.Options{AlwaysShowAverage: showAverage},
				export.NewChromium(chromePath), logger)

			var artifact export.Artifact
			switch format {
			case "png":
				artifact, err = exporter.ExportPNG(cmd.Context(), in)
			case "pdf":
				artifact, err = exporter.ExportPDF(cmd.Context(), in)
			default:
				return fmt.Errorf("unknown format %q (want png or pdf)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = artifact.Filename
			}
			if err := os.WriteFile(out, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(artifact.Data))
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", "pdf", "Output format: pdf or png")
	cmd.Flags().StringP("out", "o", "", "Output path (defaults to the report's fixed filename)")
	cmd.Flags().String("chrome-path", "", "Chromium binary path override")
	cmd.Flags().Bool("always-show-average", true, "Show the B2B-average block even when the rate exceeds it")
	return cmd
}
