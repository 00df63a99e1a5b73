package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jasonsutter87/VeilVault-sub001/cmd/veilvault-analytics/commands"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "veilvault-analytics",
		Short: "VeilVault GRC analytics CLI",
		Long: `A command-line interface for analyzing governance, risk and compliance
metric histories: descriptive statistics, anomaly detection, forecasting
and risk prediction.`,
		Version: "0.1.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.veilvault.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(commands.NewDescribeCmd())
	rootCmd.AddCommand(commands.NewDetectCmd())
	rootCmd.AddCommand(commands.NewForecastCmd())
	rootCmd.AddCommand(commands.NewPredictCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".veilvault")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("VEILVAULT")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
