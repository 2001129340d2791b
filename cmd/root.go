package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/internal/iocache"
	"github.com/huangsam/irmetrics/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// runManager is the global run store manager instance.
var runManager contract.RunManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "irmetrics",
	Short:              "Evaluate ranked lists with graded-relevance IR metrics.",
	Long:               `irmetrics labels ranked lists with relevance judgments and scores them with AP, Q-measure, nDCG, ERR, RBP and related metrics.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env file is optional; a malformed one is not
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Cannot load .env file", err)
	}

	setConfigFile()

	viper.SetEnvPrefix("IRMETRICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("sep", contract.DefaultSeparator)
	viper.SetDefault("rel-format", string(schema.NTCIRRel))
	viper.SetDefault("beta", contract.DefaultBeta)
	viper.SetDefault("gamma", contract.DefaultGamma)
	viper.SetDefault("logb", contract.DefaultLogBase)
	viper.SetDefault("rbp", contract.DefaultPersistence)
	viper.SetDefault("cutoffs", contract.DefaultCutoffs)
	viper.SetDefault("run-backend", string(schema.NoneBackend))
	viper.SetDefault("run-db-connect", "")
	viper.SetDefault("color", "yes")
}

// setConfigFile points viper at --config, or at .irmetrics.yaml in the
// current or home directory.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".irmetrics")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// loadConfigFile reads the config file if one is present.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// inputProcessor validates the settings of one command after the shared ones.
type inputProcessor func(cfg *contract.Config, input *contract.ConfigRawInput) error

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, cmd *cobra.Command, args []string, process inputProcessor) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments and flag state (which Viper doesn't do).
	input.Inputs = args
	if f := cmd.Flags().Lookup("truncate"); f != nil {
		input.TruncateSet = f.Changed
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if process != nil {
		if err := process(cfg, input); err != nil {
			return err
		}
	}
	contract.SetupLogger(os.Stderr, cfg.Verbose)

	// 5. Initialize the run store with validated config
	if err := iocache.InitStores(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	return nil
}

// setupWith adapts sharedSetup to Cobra's PreRunE for one command.
func setupWith(process inputProcessor) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args, process)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetRunManager sets the global run store manager.
func SetRunManager(mgr contract.RunManager) {
	runManager = mgr
}
