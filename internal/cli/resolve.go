package cli

import (
	"github.com/deri-protocol/deri-deploy/internal/cli/render"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd() *cobra.Command {
	var format string
	var requireArtifact bool

	cmd := &cobra.Command{
		Use:   "resolve [network]",
		Short: "Print the constructor arguments for a network",
		Long: `Resolve the DeriOneV1Main constructor arguments for a network without
touching the chain. Arguments are validated, ordered to match the compiled
contract when its artifact is available, and ABI encoded.

Examples:
  deri resolve mainnet
  deri resolve kovan --format json
  deri resolve --network develop --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("json") {
				format = render.FormatJSON
			}
			if err := render.ValidateFormat(format); err != nil {
				return err
			}

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

			result, err := app.ResolveDeployment.Run(cmd.Context(), usecase.ResolveDeploymentParams{
				Network:         network,
				RequireArtifact: requireArtifact,
			})
			if err != nil {
				return err
			}

			return render.NewSpecRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&requireArtifact, "require-artifact", false, "Fail when the compiled contract artifact cannot be found")

	return cmd
}
