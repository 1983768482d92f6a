// Package cli wires the cobra command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/planloom/planloom/internal/ai"
	"github.com/planloom/planloom/internal/config"
	"github.com/planloom/planloom/internal/tui"
	"github.com/planloom/planloom/internal/version"
	"github.com/planloom/planloom/pkg/logutils"
)

var (
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "planloom",
	Short: "Turn feature descriptions into implementation checklists",
	Long: `Planloom sends a natural-language feature description to a generative
model and renders the structured response as an interactive checklist of
implementation tasks. Run without arguments to open the interactive UI.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closer, err := setup()
		if err != nil {
			return err
		}
		defer closer()

		client := ai.NewClient(cfg.APIKey, cfg.Model, logger)
		client.BaseURL = cfg.BaseURL

		return tui.Run(tui.Options{
			Generator: client,
			Logger:    logger,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "path to log file (logging disabled when empty)")

	rootCmd.AddCommand(generateCmd)
}

// setup loads config, validates it, and builds the logger.
func setup() (*config.Config, zerolog.Logger, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	logger, closer, err := logutils.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return cfg, logger, closer, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
