package cli

import (
	"github.com/deri-protocol/deri-deploy/internal/cli/render"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [network]",
		Short: "Deploy DeriOneV1Main to a network",
		Long: `Resolve the constructor arguments for a network and send the contract
creation transaction. The signing key is read from the environment variable
named in [credentials] (DEPLOYER_PRIVATE_KEY by default).

With --dry-run the transaction is estimated but not sent.

Examples:
  deri deploy develop
  deri deploy mainnet --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network := ""
			if len(args) > 0 {
				network = args[0]
			} else if network, err = selectNetwork(cmd, app); err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
				Network: network,
				DryRun:  app.Config.DryRun,
			})
			if result != nil {
				if renderErr := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Estimate the deployment without broadcasting")

	return cmd
}
