package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasonsutter87/VeilVault-sub001/internal/loader"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/timeseries"
)

type DescribeOptions struct {
	InputFile    string
	OutputFormat string
}

func NewDescribeCmd() *cobra.Command {
	opts := &DescribeOptions{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize a metric history",
		Long: `Compute descriptive statistics for a metric history: central tendency,
spread, trend, volatility and seasonality.`,
		Example: `  # Summarize risk scores from a CSV export
  veilvault-analytics describe --input risk_scores.csv

  # JSON output for downstream tooling
  veilvault-analytics describe --input risk_scores.csv --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input file to summarize (required)")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "text", "Output format (text, json)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runDescribe(opts *DescribeOptions) error {
	series, err := loadSeries(opts.InputFile)
	if err != nil {
		return err
	}

	summary := timeseries.DescribeTimeSeries(series.Values)
	distribution := stats.Describe(series.Values)

	if opts.OutputFormat == "json" {
		return writeJSON(os.Stdout, map[string]interface{}{
			"series":       summary,
			"distribution": distribution,
		})
	}

	fmt.Printf("Data Points: %d\n", summary.Length)
	fmt.Printf("Mean: %.4f\n", summary.Mean)
	fmt.Printf("Median: %.4f\n", distribution.Median)
	fmt.Printf("Std Dev: %.4f\n", summary.StdDev)
	fmt.Printf("Min: %.4f\n", summary.Min)
	fmt.Printf("Max: %.4f\n", summary.Max)
	fmt.Printf("IQR: %.4f\n", distribution.IQR)
	fmt.Printf("Trend: %s (strength %.2f)\n", summary.Trend.Direction, summary.Trend.Strength)
	fmt.Printf("Volatility (CV %%): %.2f\n", summary.Volatility)
	fmt.Printf("Lag-1 Autocorrelation: %.4f\n", summary.Lag1Autocorrelation)
	if summary.SeasonalPeriod > 0 {
		fmt.Printf("Seasonal Period: %d\n", summary.SeasonalPeriod)
	} else {
		fmt.Println("Seasonal Period: none detected")
	}
	return nil
}

func loadSeries(path string) (*loader.Series, error) {
	if len(path) > 5 && path[len(path)-5:] == ".json" {
		return loader.LoadJSON(path)
	}
	return loader.LoadCSV(path)
}

func writeJSON(f *os.File, v interface{}) error {
	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
