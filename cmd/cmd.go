// Package cmd defines the command-line interface for irmetrics.
package cmd

import (
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("relfile", "r", "", "Relevance assessment file")
	rootCmd.PersistentFlags().String("rel-format", string(schema.NTCIRRel), "Relevance file format: ntcir or trec")
	rootCmd.PersistentFlags().String("topic", "", "Topic to read from a trec qrels file")
	rootCmd.PersistentFlags().String("sep", contract.DefaultSeparator, "Field separator; a single space matches any whitespace")
	rootCmd.PersistentFlags().BoolP("condensed", "j", false, "Drop unjudged documents (condensed list)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or table or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for table and csv scores")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored score bands in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log the grade, stop and per-level judgment tables")
	rootCmd.PersistentFlags().String("run-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql run tracking")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of labelCmd to Viper
	labelCmd.Flags().IntP("truncate", "t", 0, "Keep only the first N output rows")
	labelCmd.Flags().Bool("ec", false, "Equivalence class mode")
	if err := viper.BindPFlags(labelCmd.Flags()); err != nil {
		contract.LogFatal("Error binding label flags", err)
	}

	// Bind all flags of computeCmd to Viper
	computeCmd.Flags().StringP("grades", "g", "", "Gain value per relevance level, ascending (e.g. 1:2:3)")
	computeCmd.Flags().StringP("stops", "s", "", "Stop weight per relevance level (defaults to the gains)")
	computeCmd.Flags().String("cutoffs", contract.DefaultCutoffs, "Comma-separated document cutoffs")
	computeCmd.Flags().Float64("beta", contract.DefaultBeta, "Persistence parameter of Q-measure")
	computeCmd.Flags().Float64("gamma", contract.DefaultGamma, "Persistence parameter of the graded-uniform NCU metrics")
	computeCmd.Flags().Float64("logb", contract.DefaultLogBase, "Logarithm base of the nDCG discount (0 means natural log)")
	computeCmd.Flags().Float64("rbp", contract.DefaultPersistence, "Persistence parameter of RBP")
	computeCmd.Flags().String("out", "", "Prefix printed at the start of every text output line")
	computeCmd.Flags().Bool("recall", false, "Also report recall")
	if err := viper.BindPFlags(computeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compute flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
