package cli

import (
	"github.com/deri-protocol/deri-deploy/internal/cli/render"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the deployments recorded in .deri/deployments.json, newest first.

Examples:
  deri deployments
  deri deployments --network mainnet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Network:  app.Config.Network,
				Contract: contract,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "Filter by contract name")

	return cmd
}
