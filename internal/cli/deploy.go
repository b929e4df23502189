package cli

import (
	"errors"
	"fmt"

	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		tags           []string
		updateFrontEnd bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the marketplace contracts",
		Long: `Run the deployment steps in order:

  01 NftMarketplace     tags: all, nftmarketplace
  02 BasicNft           tags: all, basicnft
  99 update front end   tags: all, frontend

Contracts on live networks are verified on Etherscan when ETHERSCAN_API_KEY
is set. The front-end network mapping is only written when UPDATE_FRONT_END
is set or --update-front-end is passed.

Examples:
  nftm deploy                              # Deploy everything to hardhat
  nftm deploy --network sepolia            # Deploy and verify on sepolia
  nftm deploy --tags basicnft              # Only deploy BasicNft
  nftm deploy --tags frontend --update-front-end`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, runErr := app.RunDeployments.Run(cmd.Context(), usecase.RunDeploymentsParams{
				Tags:           tags,
				UpdateFrontEnd: updateFrontEnd,
			})
			if errors.Is(runErr, usecase.ErrDeploymentCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning("Deployment cancelled"))
				return nil
			}

			// Render completed steps even when a later one failed
			if result != nil {
				var renderErr error
				if app.Config.JSON {
					renderErr = render.RenderJSON(cmd.OutOrStdout(), result)
				} else {
					renderErr = render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
				}
				if runErr == nil && renderErr != nil {
					return renderErr
				}
			}

			if runErr != nil {
				return fmt.Errorf("deployment failed: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", []string{"all"}, "Run only the steps carrying one of these tags")
	cmd.Flags().BoolVar(&updateFrontEnd, "update-front-end", false, "Write the front-end network mapping even without UPDATE_FRONT_END")

	return cmd
}
