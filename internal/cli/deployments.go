package cli

import (
	"fmt"

	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var contractName string

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the deployment records saved under the deployments directory for the
selected network.

Examples:
  nftm deployments                       # Deployments on hardhat
  nftm deployments --network sepolia
  nftm deployments show NftMarketplace   # Full record of one contract`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				ContractName: contractName,
			})
			if err != nil {
				return fmt.Errorf("failed to list deployments: %w", err)
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.AddCommand(newDeploymentShowCmd())

	return cmd
}

func newDeploymentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [contract]",
		Short: "Show the deployment record of a contract",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var contractName string
			if len(args) == 1 {
				contractName = args[0]
			} else {
				contractName, err = selectDeployment(cmd, "Select a deployment")
				if err != nil {
					return err
				}
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				ContractName: contractName,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), deployment)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeployment(deployment)
		},
	}
}
