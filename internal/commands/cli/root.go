// Package cli provides the CLI command structure for go_dukpt.
package cli

import (
	"fmt"

	"github.com/andrei-cloud/go_dukpt/internal/config"
	"github.com/andrei-cloud/go_dukpt/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCommand creates and returns the root command with all subcommands.
func NewRootCommand() (*cobra.Command, error) {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "go_dukpt",
		Short: "DUKPT key derivation and track data decryption",
		Long: `A DUKPT (ANSI X9.24) toolkit and decryption service for card reader
track data: IPEK and session key derivation, AES track 2 decryption,
reader tag extraction and a TCP service for host systems.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Initialize configuration before running any command.
			if err := config.Initialize(cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// Flags override config file and environment.
			flags := cmd.Flags()
			for key, name := range map[string]string{
				"log.level":  "log-level",
				"log.format": "log-format",
				"dukpt.bdk":  "bdk",
			} {
				if err := config.BindFlag(key, flags.Lookup(name)); err != nil {
					return err
				}
			}

			cfg := config.Get()

			return logging.Setup(cfg.Log.Level, cfg.Log.Format)
		},
	}

	// Add persistent flags that affect all commands.
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.go_dukpt/config.yaml)")

	// Add global flags that can override config file settings.
	rootCmd.PersistentFlags().
		String("log-level", "info", "logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "logging format (human, json)")
	rootCmd.PersistentFlags().String("bdk", "", "base derivation key, 32 hex characters")

	// Register all commands.
	if err := RegisterCommands(rootCmd); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	return rootCmd, nil
}
