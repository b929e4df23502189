package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// MarketOperations drives a deployed marketplace on behalf of a named account
type MarketOperations struct {
	config      *config.RuntimeConfig
	deployments DeploymentStore
	binder      MarketplaceBinder
	accounts    AccountResolver
	progress    ProgressSink
	log         *slog.Logger
}

// NewMarketOperations creates a new MarketOperations use case
func NewMarketOperations(
	cfg *config.RuntimeConfig,
	deployments DeploymentStore,
	binder MarketplaceBinder,
	accounts AccountResolver,
	progress ProgressSink,
	log *slog.Logger,
) *MarketOperations {
	return &MarketOperations{
		config:      cfg,
		deployments: deployments,
		binder:      binder,
		accounts:    accounts,
		progress:    progress,
		log:         log,
	}
}

// MarketTarget identifies the marketplace and the account acting on it
type MarketTarget struct {
	// Marketplace overrides the recorded deployment address
	Marketplace string
	// Account is the named account sending transactions, defaults to the deployer
	Account string
}

// ItemParams identifies an NFT and an optional amount
type ItemParams struct {
	MarketTarget
	NftAddress string
	TokenID    *big.Int
	Amount     *big.Int // price, new price or payment
}

// List offers an NFT for sale
func (uc *MarketOperations) List(ctx context.Context, params ItemParams) (*domain.MarketReceipt, error) {
	market, nft, err := uc.bindItem(ctx, params)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, "listItem", func() (*domain.MarketReceipt, error) {
		return market.ListItem(ctx, nft, params.TokenID, params.Amount)
	})
}

// Buy purchases a listed NFT, paying Amount
func (uc *MarketOperations) Buy(ctx context.Context, params ItemParams) (*domain.MarketReceipt, error) {
	market, nft, err := uc.bindItem(ctx, params)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, "buyItem", func() (*domain.MarketReceipt, error) {
		return market.BuyItem(ctx, nft, params.TokenID, params.Amount)
	})
}

// Cancel removes a listing
func (uc *MarketOperations) Cancel(ctx context.Context, params ItemParams) (*domain.MarketReceipt, error) {
	market, nft, err := uc.bindItem(ctx, params)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, "cancelListing", func() (*domain.MarketReceipt, error) {
		return market.CancelListing(ctx, nft, params.TokenID)
	})
}

// Update changes the price of a listing
func (uc *MarketOperations) Update(ctx context.Context, params ItemParams) (*domain.MarketReceipt, error) {
	market, nft, err := uc.bindItem(ctx, params)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, "updateListing", func() (*domain.MarketReceipt, error) {
		return market.UpdateListing(ctx, nft, params.TokenID, params.Amount)
	})
}

// GetListing reads the current listing of an NFT
func (uc *MarketOperations) GetListing(ctx context.Context, params ItemParams) (*domain.Listing, error) {
	market, nft, err := uc.bindItem(ctx, params)
	if err != nil {
		return nil, err
	}
	return market.GetListing(ctx, nft, params.TokenID)
}

// ProceedsParams selects whose proceeds to read
type ProceedsParams struct {
	MarketTarget
	// Seller is an address or a named account; defaults to the acting account
	Seller string
}

// Proceeds reads the withdrawable balance of a seller
func (uc *MarketOperations) Proceeds(ctx context.Context, params ProceedsParams) (common.Address, *big.Int, error) {
	market, err := uc.bind(ctx, params.MarketTarget)
	if err != nil {
		return common.Address{}, nil, err
	}

	seller := params.Seller
	if seller == "" {
		seller = uc.account(params.MarketTarget)
	}
	sellerAddr, err := uc.resolveAddress(seller)
	if err != nil {
		return common.Address{}, nil, err
	}

	amount, err := market.GetProceeds(ctx, sellerAddr)
	if err != nil {
		return common.Address{}, nil, err
	}
	return sellerAddr, amount, nil
}

// Withdraw pays out the acting account's proceeds
func (uc *MarketOperations) Withdraw(ctx context.Context, target MarketTarget) (*domain.MarketReceipt, error) {
	market, err := uc.bind(ctx, target)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, "withdrawProceeds", func() (*domain.MarketReceipt, error) {
		return market.WithdrawProceeds(ctx)
	})
}

func (uc *MarketOperations) send(ctx context.Context, method string, call func() (*domain.MarketReceipt, error)) (*domain.MarketReceipt, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: method, Message: fmt.Sprintf("Sending %s", method), Spinner: true})
	receipt, err := call()
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: method})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	uc.log.Debug("transaction mined", "method", method, "tx", receipt.TxHash.Hex(), "events", len(receipt.Events))
	return receipt, nil
}

func (uc *MarketOperations) bindItem(ctx context.Context, params ItemParams) (Marketplace, common.Address, error) {
	if !common.IsHexAddress(params.NftAddress) {
		return nil, common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, params.NftAddress)
	}
	if params.TokenID == nil {
		return nil, common.Address{}, fmt.Errorf("token id is required")
	}
	market, err := uc.bind(ctx, params.MarketTarget)
	if err != nil {
		return nil, common.Address{}, err
	}
	return market, common.HexToAddress(params.NftAddress), nil
}

func (uc *MarketOperations) bind(ctx context.Context, target MarketTarget) (Marketplace, error) {
	address, err := uc.marketplaceAddress(ctx, target)
	if err != nil {
		return nil, err
	}
	return uc.binder.Bind(ctx, address, uc.account(target))
}

func (uc *MarketOperations) marketplaceAddress(ctx context.Context, target MarketTarget) (common.Address, error) {
	if target.Marketplace != "" {
		if !common.IsHexAddress(target.Marketplace) {
			return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, target.Marketplace)
		}
		return common.HexToAddress(target.Marketplace), nil
	}
	if uc.config.Network == nil {
		return common.Address{}, fmt.Errorf("no network selected, use --network")
	}

	deployment, err := uc.deployments.GetDeployment(ctx, uc.config.Network.Name, domain.MarketplaceContract)
	if err != nil {
		return common.Address{}, err
	}
	return deployment.Address, nil
}

func (uc *MarketOperations) account(target MarketTarget) string {
	if target.Account == "" {
		return DeployerAccount
	}
	return target.Account
}

func (uc *MarketOperations) resolveAddress(ref string) (common.Address, error) {
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	return uc.accounts.AccountAddress(ref)
}
