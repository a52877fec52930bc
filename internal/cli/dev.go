package cli

import (
	"os"
	"os/signal"

	"github.com/deri-protocol/deri-deploy/internal/cli/render"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDevCmd creates the dev command with subcommands
func NewDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Manage the local anvil fork",
		Long: `Manage a local anvil node forking the chain named by the develop profile's
fork_url. The node listens on the port of the profile's rpc_url so that
'deri deploy develop' reaches it.`,
	}

	// Add subcommands
	cmd.AddCommand(newDevNodeCmd("start", "Start the local fork", "Start the local anvil fork. Fails if already running."))
	cmd.AddCommand(newDevNodeCmd("stop", "Stop the local fork", "Stop the local anvil fork if running."))
	cmd.AddCommand(newDevNodeCmd("restart", "Restart the local fork", "Stop and start the local anvil fork."))
	cmd.AddCommand(newDevNodeCmd("status", "Show the local fork status", "Show the process and RPC status of the local anvil fork."))
	cmd.AddCommand(newDevNodeCmd("logs", "Follow the local fork logs", "Follow the anvil log file until interrupted."))

	return cmd
}

// newDevNodeCmd creates one dev node operation command
func newDevNodeCmd(operation, short, long string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   operation,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevNodeCommand(cmd, operation, port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "RPC port to bind (defaults to the port of the profile's rpc_url)")
	return cmd
}

// runDevNodeCommand executes a dev node management command
func runDevNodeCommand(cmd *cobra.Command, operation, port string) error {
	// Get app instance
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	params := usecase.ManageDevNodeParams{
		Operation: operation,
		Network:   app.Config.Network,
		Port:      port,
	}

	result, err := app.ManageDevNode.Execute(cmd.Context(), params)
	if err != nil {
		return err
	}

	renderer := render.NewDevNodeRenderer(cmd.OutOrStdout(), app.Config.JSON)

	// For logs operation, we need special handling
	if operation == "logs" {
		renderer.RenderLogsHeader(result)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return app.ManageDevNode.StreamLogs(ctx, params, cmd.OutOrStdout())
	}

	return renderer.Render(result)
}
