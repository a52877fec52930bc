package cli

import (
	"github.com/deri-protocol/deri-deploy/internal/cli/render"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks configured in deploy.toml",
		Long: `List every network profile with its chain ID, gas settings and the file it
was declared in. Profiles with invalid parameters or conflicting
registrations are listed with the reason.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			// Run use case
			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			// Render output
			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.JSON)
			return renderer.RenderNetworksList(result)
		},
	}

	return cmd
}
