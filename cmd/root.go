// =============================================================================
// Lotto QR Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (lottoqr)
//   ├── processCmd (lottoqr process)
//   ├── roundCmd   (lottoqr round)
//   └── versionCmd (lottoqr version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   - Global flags (--config, --verbose, --lang)
//   - Binding flags into the viper instance shared by all commands
//   - Loading configuration, labels, and logging through bootstrap()
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lotto-qr-generator/internal/config"
	"github.com/ginjaninja78/lotto-qr-generator/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging and per-game output.
var verbose bool

// vcfg is the viper instance every command reads configuration from.
var vcfg = config.NewViper()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lottoqr",
	Short: "Lotto QR Generator - turn lists of lotto numbers into purchase QR codes",
	Long: `Lotto QR Generator reads lotto number selections from spreadsheets,
CSV exports, plain text, and PDF files, groups them five games per code, and
renders each group as a QR code that a lottery terminal or app can scan.

Key Features:
  - Workbook, CSV, text, and PDF inputs, detected from file content
  - Korean (EUC-KR) text files decoded automatically
  - URL and electronic slip payload formats
  - Draw round computed from the weekly schedule when not given
  - Purchase history exported as CSV next to the images

Example Usage:
  lottoqr process                                  # Every file in the input directory
  lottoqr process --single --file games.xlsx       # One file
  lottoqr process --round 1211 --grammar slip      # Fixed round, slip payloads
  lottoqr round                                    # Show the round on sale now`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().String(
		"lang",
		"",
		"Message language: ko or en (default from config, ko)",
	)

	vcfg.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("lang"))
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// app bundles what a command needs after startup.
type app struct {
	cfg    *config.MainConfig
	labels config.Labels
	logger *slog.Logger
	close  func() error
}

// bootstrap loads configuration and labels and installs the logger.
func bootstrap(cmd *cobra.Command) (*app, error) {
	required := cmd.Flags().Changed("config")

	cfg, err := config.Load(vcfg, cfgFile, required)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: verbose,
		File:    cfg.LogFile,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	locale, _ := config.ParseLocale(cfg.Locale)
	labels, err := config.LoadLabels(locale, cfg.LabelsFile)
	if err != nil {
		closeLog()
		return nil, err
	}

	logger.Debug("configuration loaded", "file", vcfg.ConfigFileUsed(), "locale", locale)
	return &app{cfg: cfg, labels: labels, logger: logger, close: closeLog}, nil
}
