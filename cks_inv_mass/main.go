package main

import (
	"fmt"
	"log"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// global flags
	verbose    bool
	profiling  string
	configFile string

	logger   *zap.Logger
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "cks_inv_mass",
	Short: "charged K*(892) invariant mass analysis in the K0S-pion channel",
	Long: `cks_inv_mass pairs K0S candidates with charged pions of the same collision and
of collisions with similar vertex position and multiplicity, and histograms the
pair mass in bins of multiplicity and transverse momentum.

  cks_inv_mass fill -o hists.root aod.root
  cks_inv_mass plot -o mass.png hists.root
  cks_inv_mass map -o map.png hists.root`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		switch profiling {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.Quiet)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.Quiet)
		default:
			return fmt.Errorf("unknown profile %q", profiling)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&profiling, "profile", "", "write a cpu or mem profile")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")

	rootCmd.AddCommand(fillCmd, plotCmd, mapCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
