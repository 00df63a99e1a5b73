package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/timeseries"
)

type ForecastOptions struct {
	InputFile    string
	Method       string
	Periods      int
	Alpha        float64
	Confidence   float64
	OutputFormat string
}

func NewForecastCmd() *cobra.Command {
	opts := &ForecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast future values of a metric history",
		Long: `Project a metric history forward with exponential smoothing or a linear
model, with confidence bounds per horizon.`,
		Example: `  # Six-period smoothed forecast
  veilvault-analytics forecast --input scores.csv --periods 6

  # Linear extrapolation with 99% bounds
  veilvault-analytics forecast --input scores.csv --method linear --confidence 0.99`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input file to forecast from (required)")
	cmd.Flags().StringVar(&opts.Method, "method", timeseries.MethodSES, "Forecast method (ses, linear)")
	cmd.Flags().IntVar(&opts.Periods, "periods", 6, "Number of periods to forecast")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", 0.3, "Smoothing factor for ses")
	cmd.Flags().Float64Var(&opts.Confidence, "confidence", 0.95, "Confidence level for bounds")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "text", "Output format (text, json)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runForecast(opts *ForecastOptions) error {
	series, err := loadSeries(opts.InputFile)
	if err != nil {
		return err
	}

	var result = timeseries.ForecastSES(series.Values, opts.Alpha, opts.Periods, opts.Confidence)
	if opts.Method == timeseries.MethodLinear {
		result = timeseries.ForecastLinear(series.Values, opts.Periods, opts.Confidence)
	}

	if opts.OutputFormat == "json" {
		return writeJSON(os.Stdout, result)
	}

	fmt.Printf("Forecast (%s) over %d periods:\n", result.Method, len(result.Forecast))
	for i := range result.Forecast {
		fmt.Printf("- period %d: %.4f [%.4f, %.4f]\n",
			i+1, result.Forecast[i], result.Lower[i], result.Upper[i])
	}
	return nil
}
