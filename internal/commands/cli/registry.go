// Package cli provides centralized command registration.
package cli

import (
	"github.com/andrei-cloud/go_dukpt/internal/commands/cli/dukpt"
	"github.com/andrei-cloud/go_dukpt/internal/commands/cli/server"
	"github.com/andrei-cloud/go_dukpt/internal/commands/cli/tags"
	"github.com/andrei-cloud/go_dukpt/internal/commands/cli/track"
	"github.com/spf13/cobra"
)

// RegisterCommands registers all root commands.
func RegisterCommands(root *cobra.Command) error {
	root.AddCommand(dukpt.NewDukptCommand())
	root.AddCommand(track.NewTrackCommand())
	root.AddCommand(tags.NewTagsCommand())
	root.AddCommand(server.NewServeCommand())

	return nil
}
