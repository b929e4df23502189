package cli

import (
	"context"
	"fmt"

	"github.com/nftmarket/nftm/internal/app"
	"github.com/nftmarket/nftm/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nftm",
		Short: "Deploy and operate the NFT marketplace contracts",
		Long: `nftm deploys NftMarketplace and BasicNft to an Ethereum network, verifies them
on Etherscan for live networks and records the marketplace address in the
front-end network mapping.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (defaults to hardhat)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this duration (e.g. 5m)")
	rootCmd.PersistentFlags().String("frontend-file", "", "Path to the front-end network mapping")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "market",
		Title: "Marketplace Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "main"
	rootCmd.AddCommand(deploymentsCmd)

	marketCmd := NewMarketCmd()
	marketCmd.GroupID = "market"
	rootCmd.AddCommand(marketCmd)

	registryCmd := NewRegistryCmd()
	registryCmd.GroupID = "management"
	rootCmd.AddCommand(registryCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	nodeCmd := NewNodeCmd()
	nodeCmd.GroupID = "management"
	rootCmd.AddCommand(nodeCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "__complete":
		return true
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("command context not initialized")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return appInstance, nil
}
