package cli

import (
	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List the networks from nftm.toml together with the built-in development
networks, resolving chain ids from the RPC endpoint where none is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
