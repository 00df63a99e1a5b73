package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/grc"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/outliers"
)

type DetectOptions struct {
	InputFile     string
	EntityType    string
	EntityID      string
	Sensitivity   string
	MinConfidence float64
	OutputFormat  string
}

func NewDetectCmd() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect anomalies in a metric history",
		Long: `Run the detection ensemble over a metric history and report the values
flagged by multiple methods, with severity for triage.`,
		Example: `  # Scan a control effectiveness history
  veilvault-analytics detect --input control_scores.csv --entity-type control --entity-id CTL-204

  # Flag more aggressively
  veilvault-analytics detect --input data.csv --sensitivity high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input file to scan (required)")
	cmd.Flags().StringVar(&opts.EntityType, "entity-type", "metric", "Entity type the series belongs to")
	cmd.Flags().StringVar(&opts.EntityID, "entity-id", "", "Entity identifier")
	cmd.Flags().StringVar(&opts.Sensitivity, "sensitivity", "medium", "Detection sensitivity (low, medium, high)")
	cmd.Flags().Float64Var(&opts.MinConfidence, "min-confidence", 0.5, "Minimum ensemble agreement to report")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "text", "Output format (text, json)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runDetect(opts *DetectOptions) error {
	series, err := loadSeries(opts.InputFile)
	if err != nil {
		return err
	}

	entityID := opts.EntityID
	if entityID == "" {
		entityID = series.EntityID
	}

	anomalies := grc.Scan(opts.EntityType, entityID, series.Values, grc.ScanOptions{
		Sensitivity:   outliers.Sensitivity(opts.Sensitivity),
		MinConfidence: opts.MinConfidence,
		AsOf:          time.Now().UTC(),
	})

	if opts.OutputFormat == "json" {
		return writeJSON(os.Stdout, anomalies)
	}

	fmt.Printf("Scanned %d data points, %d anomalies found\n", len(series.Values), len(anomalies))
	for _, a := range anomalies {
		fmt.Printf("- [%s] index %d value %.4f score %.2f (%s)\n",
			a.Severity, a.Index, a.Value, a.Score, a.Message)
	}
	return nil
}
