// Package server provides server-related CLI commands.
package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrei-cloud/go_dukpt/internal/config"
	"github.com/andrei-cloud/go_dukpt/internal/hsm"
	"github.com/andrei-cloud/go_dukpt/internal/hsm/logic"
	"github.com/andrei-cloud/go_dukpt/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the decryption server",
		Long: `Start the TCP decryption service. Hosts send DK (decrypt track data),
KC (session key check value) and NC (diagnostics) commands.`,
		RunE: runServe,
	}

	// Add serve command specific flags that can override config.
	cmd.Flags().String("host", "localhost", "Server host")
	cmd.Flags().Int("port", 1600, "Server port")
	cmd.Flags().Bool("list-commands", false, "List the supported host commands and exit")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if list, _ := cmd.Flags().GetBool("list-commands"); list {
		for _, c := range logic.Commands() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", c.Code, c.Description)
		}

		return nil
	}

	if err := config.BindFlag("server.host", cmd.Flags().Lookup("host")); err != nil {
		return err
	}
	if err := config.BindFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
		return err
	}
	cfg := config.Get()

	bdkHex, err := config.BDK()
	if err != nil {
		return err
	}

	hsmInstance, err := hsm.NewHSM(bdkHex, cfg.Dukpt.IV, hsm.FirmwareVersion)
	if err != nil {
		return fmt.Errorf("failed to initialize HSM instance: %w", err)
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv, err := server.NewServer(serverAddr, hsmInstance)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stopChan)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		// listener runs in the background
		<-stopChan
	case <-stopChan:
	}

	log.Info().Msg("shutting down server...")
	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	return nil
}
