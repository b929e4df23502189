package cli

import (
	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNodeCmd creates the node command with its subcommands
func NewNodeCmd() *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage a local anvil node",
		Long: `Run a local anvil node in the background for a development network.
The node listens on the host and port of the network's rpc_url and uses its
chain id. State and logs are kept under .nftm/ in the project.

Examples:
  nftm node start                    # Node for the localhost network
  nftm node status
  nftm deploy --network localhost    # Deploy against it
  nftm node stop`,
	}

	cmd.PersistentFlags().StringVar(&network, "for", usecase.DefaultNodeNetwork, "Development network the node serves")

	for _, op := range []struct{ name, short string }{
		{"start", "Start the local node"},
		{"stop", "Stop the local node"},
		{"restart", "Restart the local node"},
		{"status", "Show local node status"},
	} {
		cmd.AddCommand(newNodeOperationCmd(op.name, op.short, &network))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Print the local node log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			return app.ManageNode.Logs(cmd.Context(), usecase.ManageNodeParams{Network: network}, cmd.OutOrStdout())
		},
	})

	return cmd
}

func newNodeOperationCmd(operation, short string, network *string) *cobra.Command {
	return &cobra.Command{
		Use:   operation,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageNode.Execute(cmd.Context(), usecase.ManageNodeParams{
				Operation: operation,
				Network:   *network,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewNodeRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
