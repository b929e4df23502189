package cli

import (
	"fmt"

	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// NewRegistryCmd creates the registry command with its subcommands
func NewRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and update the front-end network mapping",
		Long: `The front-end network mapping records every deployed marketplace address per
network so the web app can find the contract.`,
	}

	cmd.AddCommand(newRegistryShowCmd())
	cmd.AddCommand(newRegistryUpdateCmd())

	return cmd
}

func newRegistryShowCmd() *cobra.Command {
	var (
		format string
		key    string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the front-end network mapping",
		Long: `Print the front-end network mapping.

Examples:
  nftm registry show                   # Table of every network
  nftm registry show --key 11155111    # Only the sepolia entry
  nftm registry show --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if app.Config.JSON {
				format = render.FormatJSON
			}

			renderer, err := render.NewRegistryRenderer(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			result, err := app.ShowRegistry.Run(cmd.Context(), usecase.ShowRegistryParams{Network: key})
			if err != nil {
				return fmt.Errorf("failed to read registry: %w", err)
			}
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatTable, "Output format (table, json, yaml)")
	cmd.Flags().StringVar(&key, "key", "", "Only show this network identifier (chain id or name)")

	return cmd
}

func newRegistryUpdateCmd() *cobra.Command {
	var contracts []string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge recorded deployments into the front-end network mapping",
		Long: `Merge the recorded deployment addresses of the selected network into the
front-end network mapping, without deploying anything. Existing entries are
kept and known addresses are not duplicated.

Examples:
  nftm registry update --network sepolia
  nftm registry update --contracts NftMarketplace,BasicNft`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.UpdateFrontEnd.Run(cmd.Context(), usecase.UpdateFrontEndParams{
				Force:     true,
				Contracts: contracts,
			})
			if err != nil {
				return fmt.Errorf("failed to update front end: %w", err)
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderFrontEnd(result)
		},
	}

	cmd.Flags().StringSliceVar(&contracts, "contracts", nil, "Contracts to record (defaults to NftMarketplace)")

	return cmd
}
