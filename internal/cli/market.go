package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftmarket/nftm/internal/cli/render"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/cobra"
)

// marketFlags are shared by every market subcommand
type marketFlags struct {
	account     string
	marketplace string
}

func (f *marketFlags) target() usecase.MarketTarget {
	return usecase.MarketTarget{
		Marketplace: f.marketplace,
		Account:     f.account,
	}
}

// NewMarketCmd creates the market command with its subcommands
func NewMarketCmd() *cobra.Command {
	flags := &marketFlags{}

	cmd := &cobra.Command{
		Use:   "market",
		Short: "Interact with the deployed NftMarketplace",
		Long: `Send transactions to and read state from the deployed NftMarketplace.

The marketplace address comes from the deployment record of the selected
network unless --marketplace is given. Transactions are signed by the named
account given with --account (defaults to deployer). NFTs can be given as an
address or as the name of a recorded deployment such as BasicNft.

Examples:
  nftm market list BasicNft 0 0.1          # List token 0 for 0.1 ETH
  nftm market buy BasicNft 0 0.1 --account player
  nftm market listing BasicNft 0
  nftm market proceeds
  nftm market withdraw`,
	}

	cmd.PersistentFlags().StringVar(&flags.account, "account", "", "Named account sending the transaction (default deployer)")
	cmd.PersistentFlags().StringVar(&flags.marketplace, "marketplace", "", "Marketplace address, overrides the deployment record")

	cmd.AddCommand(newMarketListCmd(flags))
	cmd.AddCommand(newMarketBuyCmd(flags))
	cmd.AddCommand(newMarketCancelCmd(flags))
	cmd.AddCommand(newMarketUpdateCmd(flags))
	cmd.AddCommand(newMarketListingCmd(flags))
	cmd.AddCommand(newMarketProceedsCmd(flags))
	cmd.AddCommand(newMarketWithdrawCmd(flags))

	return cmd
}

func newMarketListCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <nft> <token-id> <price>",
		Short: "List an NFT for sale",
		Long: `List an NFT for sale. The marketplace must be approved for the token and the
price must be greater than zero.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarketWrite(cmd, "listItem", flags, args, func(params usecase.ItemParams) (*domain.MarketReceipt, error) {
				app, err := getApp(cmd)
				if err != nil {
					return nil, err
				}
				return app.Market.List(cmd.Context(), params)
			})
		},
	}
}

func newMarketBuyCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <nft> <token-id> <payment>",
		Short: "Buy a listed NFT",
		Long:  `Buy a listed NFT, sending the payment along. Paying less than the price reverts.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarketWrite(cmd, "buyItem", flags, args, func(params usecase.ItemParams) (*domain.MarketReceipt, error) {
				app, err := getApp(cmd)
				if err != nil {
					return nil, err
				}
				return app.Market.Buy(cmd.Context(), params)
			})
		},
	}
}

func newMarketCancelCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <nft> <token-id>",
		Short: "Cancel a listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarketWrite(cmd, "cancelListing", flags, args, func(params usecase.ItemParams) (*domain.MarketReceipt, error) {
				app, err := getApp(cmd)
				if err != nil {
					return nil, err
				}
				return app.Market.Cancel(cmd.Context(), params)
			})
		},
	}
}

func newMarketUpdateCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update <nft> <token-id> <new-price>",
		Short: "Change the price of a listing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarketWrite(cmd, "updateListing", flags, args, func(params usecase.ItemParams) (*domain.MarketReceipt, error) {
				app, err := getApp(cmd)
				if err != nil {
					return nil, err
				}
				return app.Market.Update(cmd.Context(), params)
			})
		},
	}
}

func newMarketListingCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "listing <nft> <token-id>",
		Short: "Show the listing of an NFT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params, err := itemParams(cmd, flags, args)
			if err != nil {
				return err
			}

			listing, err := app.Market.GetListing(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), listing)
			}
			return render.NewMarketRenderer(cmd.OutOrStdout()).RenderListing(
				common.HexToAddress(params.NftAddress), params.TokenID, listing)
		},
	}
}

func newMarketProceedsCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "proceeds [seller]",
		Short: "Show the withdrawable proceeds of a seller",
		Long: `Show the withdrawable proceeds of a seller. The seller is an address or a
named account and defaults to the acting account.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ProceedsParams{MarketTarget: flags.target()}
			if len(args) == 1 {
				params.Seller = args[0]
			}

			seller, amount, err := app.Market.Proceeds(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]string{
					"seller":   seller.Hex(),
					"proceeds": amount.String(),
				})
			}
			return render.NewMarketRenderer(cmd.OutOrStdout()).RenderProceeds(seller, amount)
		},
	}
}

func newMarketWithdrawCmd(flags *marketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the proceeds of the acting account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			receipt, err := app.Market.Withdraw(cmd.Context(), flags.target())
			if err != nil {
				return err
			}
			return renderReceipt(cmd, "withdrawProceeds", receipt)
		},
	}
}

// runMarketWrite parses the item arguments, sends the transaction and renders the receipt
func runMarketWrite(
	cmd *cobra.Command,
	method string,
	flags *marketFlags,
	args []string,
	send func(usecase.ItemParams) (*domain.MarketReceipt, error),
) error {
	params, err := itemParams(cmd, flags, args)
	if err != nil {
		return err
	}

	receipt, err := send(params)
	if err != nil {
		return err
	}
	return renderReceipt(cmd, method, receipt)
}

// itemParams reads <nft> <token-id> [amount]
func itemParams(cmd *cobra.Command, flags *marketFlags, args []string) (usecase.ItemParams, error) {
	params := usecase.ItemParams{MarketTarget: flags.target()}

	nft, err := resolveNft(cmd, args[0])
	if err != nil {
		return params, err
	}
	params.NftAddress = nft.Hex()

	params.TokenID, err = parseTokenID(args[1])
	if err != nil {
		return params, err
	}

	if len(args) > 2 {
		params.Amount, err = parseAmount(args[2])
		if err != nil {
			return params, err
		}
	}
	return params, nil
}

// resolveNft accepts an address or the name of a recorded deployment
func resolveNft(cmd *cobra.Command, ref string) (common.Address, error) {
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}

	app, err := getApp(cmd)
	if err != nil {
		return common.Address{}, err
	}
	deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{ContractName: ref})
	if err != nil {
		return common.Address{}, fmt.Errorf("%q is neither an address nor a recorded deployment: %w", ref, err)
	}
	return deployment.Address, nil
}

func renderReceipt(cmd *cobra.Command, method string, receipt *domain.MarketReceipt) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	if app.Config.JSON {
		return render.RenderJSON(cmd.OutOrStdout(), receipt)
	}
	return render.NewMarketRenderer(cmd.OutOrStdout()).RenderReceipt(method, receipt)
}
