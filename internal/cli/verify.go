package cli

import (
	"fmt"

	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "verify [contract]",
		Short: "Verify a deployed contract on Etherscan",
		Long: `Verify a recorded deployment on the network's Etherscan-compatible explorer.
Requires ETHERSCAN_API_KEY. Development networks are never verified.

Examples:
  nftm verify NftMarketplace --network sepolia   # Verify the marketplace
  nftm verify --network sepolia                  # Pick from recorded deployments
  nftm verify BasicNft --network sepolia --force # Re-verify even if already verified`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var contractName string
			if len(args) == 1 {
				contractName = args[0]
			} else {
				contractName, err = selectDeployment(cmd, "Select a contract to verify")
				if err != nil {
					return err
				}
			}

			result, err := app.VerifyContract.Run(ctx, usecase.VerifyContractParams{
				ContractName: contractName,
				Force:        forceFlag,
			})
			if result != nil {
				if app.Config.JSON {
					if renderErr := render.RenderJSON(cmd.OutOrStdout(), result); renderErr != nil && err == nil {
						return renderErr
					}
				} else if renderErr := render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result); renderErr != nil && err == nil {
					return renderErr
				}
			}
			if err != nil {
				return fmt.Errorf("failed to verify %s: %w", contractName, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Re-verify even if already verified")

	return cmd
}

// selectDeployment asks the user to pick one of the recorded deployments on the active network
func selectDeployment(cmd *cobra.Command, prompt string) (string, error) {
	app, err := getApp(cmd)
	if err != nil {
		return "", err
	}
	if app.Config.Network == nil {
		return "", fmt.Errorf("no network selected, use --network")
	}

	listed, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
		Network: app.Config.Network.Name,
	})
	if err != nil {
		return "", err
	}
	if len(listed.Deployments) == 0 {
		return "", fmt.Errorf("no deployments recorded on %s", app.Config.Network.Name)
	}

	names := make([]string, 0, len(listed.Deployments))
	for _, dep := range listed.Deployments {
		names = append(names, dep.ContractName)
	}
	return app.Selector.SelectOne(cmd.Context(), names, prompt)
}
