package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/prediction"
)

type PredictOptions struct {
	InputFile         string
	EntityID          string
	Metric            string
	Periods           int
	CriticalThreshold float64
	HighThreshold     float64
	ComplianceFloor   float64
	OutputFormat      string
}

func NewPredictCmd() *cobra.Command {
	opts := &PredictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict future risk posture for an entity",
		Long: `Blend smoothing, regression and trend-adjusted averaging into a forward
prediction with confidence tiers, outlook and threshold alerts.`,
		Example: `  # Risk score outlook with breach thresholds
  veilvault-analytics predict --input risk.csv --metric risk --critical 20 --high 15

  # Compliance score outlook against a floor
  veilvault-analytics predict --input compliance.csv --metric compliance --floor 0.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input file with the metric history (required)")
	cmd.Flags().StringVar(&opts.EntityID, "entity-id", "", "Entity identifier")
	cmd.Flags().StringVar(&opts.Metric, "metric", "risk", "Metric kind (risk, control, compliance)")
	cmd.Flags().IntVar(&opts.Periods, "periods", 6, "Number of periods to predict")
	cmd.Flags().Float64Var(&opts.CriticalThreshold, "critical", 20, "Critical risk threshold")
	cmd.Flags().Float64Var(&opts.HighThreshold, "high", 15, "High risk threshold")
	cmd.Flags().Float64Var(&opts.ComplianceFloor, "floor", 0.8, "Compliance score floor")
	cmd.Flags().StringVar(&opts.OutputFormat, "format", "text", "Output format (text, json)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runPredict(opts *PredictOptions) error {
	series, err := loadSeries(opts.InputFile)
	if err != nil {
		return err
	}

	entityID := opts.EntityID
	if entityID == "" {
		entityID = series.EntityID
	}

	predOpts := prediction.Options{
		Periods: opts.Periods,
		AsOf:    time.Now().UTC(),
	}

	var pred models.Prediction
	switch opts.Metric {
	case "control":
		pred = prediction.PredictControlEffectiveness(entityID, series.Values, predOpts)
	case "compliance":
		pred = prediction.PredictComplianceScore(entityID, series.Values, opts.ComplianceFloor, predOpts)
	default:
		pred = prediction.PredictRiskScores(entityID, series.Values,
			prediction.RiskThresholds{Critical: opts.CriticalThreshold, High: opts.HighThreshold}, predOpts)
	}

	if opts.OutputFormat == "json" {
		return writeJSON(os.Stdout, pred)
	}

	fmt.Printf("Entity: %s\n", pred.EntityID)
	fmt.Printf("Current Value: %.4f\n", pred.CurrentValue)
	fmt.Printf("Outlook: %s\n", pred.Outlook)
	fmt.Printf("Confidence: %.2f (%s)\n", pred.Confidence, pred.Tier)
	fmt.Printf("Model: %s\n", pred.Model)
	for _, v := range pred.Values {
		fmt.Printf("- %s: %.4f [%.4f, %.4f] confidence %.2f\n",
			v.Label, v.Value, v.LowerBound, v.UpperBound, v.Confidence)
	}
	for _, a := range pred.Alerts {
		fmt.Printf("! %s/%s: %s\n", a.Type, a.Severity, a.Message)
	}
	return nil
}
