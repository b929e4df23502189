package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/nftmarket/nftm/internal/adapters/blockchain"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/usecase"
)

// Client is a bound NftMarketplace contract acting as one named account
type Client struct {
	address  common.Address
	contract *bind.BoundContract
	backend  blockchain.Backend
	accounts *blockchain.Accounts
	account  string
	chainID  uint64
	log      *slog.Logger
}

// NewClient binds the marketplace at address
func NewClient(address common.Address, backend blockchain.Backend, chainID uint64, accounts *blockchain.Accounts, account string, log *slog.Logger) *Client {
	return &Client{
		address:  address,
		contract: bind.NewBoundContract(address, MarketplaceABI, backend, backend, backend),
		backend:  backend,
		accounts: accounts,
		account:  account,
		chainID:  chainID,
		log:      log,
	}
}

// Address returns the marketplace address
func (c *Client) Address() common.Address {
	return c.address
}

// ListItem offers tokenID of nft for price. The marketplace must be approved for the token.
func (c *Client) ListItem(ctx context.Context, nft common.Address, tokenID, price *big.Int) (*domain.MarketReceipt, error) {
	return c.transact(ctx, nil, "listItem", nft, tokenID, price)
}

// BuyItem purchases a listed token sending payment as value
func (c *Client) BuyItem(ctx context.Context, nft common.Address, tokenID, payment *big.Int) (*domain.MarketReceipt, error) {
	return c.transact(ctx, payment, "buyItem", nft, tokenID)
}

// CancelListing removes the seller's listing
func (c *Client) CancelListing(ctx context.Context, nft common.Address, tokenID *big.Int) (*domain.MarketReceipt, error) {
	return c.transact(ctx, nil, "cancelListing", nft, tokenID)
}

// UpdateListing changes the price of an active listing
func (c *Client) UpdateListing(ctx context.Context, nft common.Address, tokenID, newPrice *big.Int) (*domain.MarketReceipt, error) {
	return c.transact(ctx, nil, "updateListing", nft, tokenID, newPrice)
}

// WithdrawProceeds pays out the account's accumulated proceeds
func (c *Client) WithdrawProceeds(ctx context.Context) (*domain.MarketReceipt, error) {
	return c.transact(ctx, nil, "withdrawProceeds")
}

// GetListing returns the listing of a token. Unlisted tokens have a zero price.
func (c *Client) GetListing(ctx context.Context, nft common.Address, tokenID *big.Int) (*domain.Listing, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getListing", nft, tokenID); err != nil {
		return nil, fmt.Errorf("getListing: %w", asRevert(err))
	}

	listing := abi.ConvertType(out[0], new(struct {
		Price  *big.Int
		Seller common.Address
	})).(*struct {
		Price  *big.Int
		Seller common.Address
	})
	return &domain.Listing{Price: listing.Price, Seller: listing.Seller}, nil
}

// GetProceeds returns the withdrawable balance of seller
func (c *Client) GetProceeds(ctx context.Context, seller common.Address) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProceeds", seller); err != nil {
		return nil, fmt.Errorf("getProceeds: %w", asRevert(err))
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

func (c *Client) transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (*domain.MarketReceipt, error) {
	opts, err := c.accounts.Transactor(c.account, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := c.contract.Transact(opts, method, args...)
	if err != nil {
		return nil, asRevert(err)
	}
	c.log.Debug("transaction sent", "method", method, "tx", tx.Hash().Hex(), "from", opts.From.Hex())

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s failed", domain.ErrReverted, tx.Hash().Hex())
	}

	events, err := DecodeEvents(c.address, receipt.Logs)
	if err != nil {
		return nil, err
	}
	return &domain.MarketReceipt{
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Events:      events,
	}, nil
}

var _ usecase.Marketplace = (*Client)(nil)

// Binder connects marketplace clients on the selected network
type Binder struct {
	client   *blockchain.Client
	accounts *blockchain.Accounts
	log      *slog.Logger
}

// NewBinder creates a new marketplace binder
func NewBinder(client *blockchain.Client, accounts *blockchain.Accounts, log *slog.Logger) *Binder {
	return &Binder{client: client, accounts: accounts, log: log}
}

// Bind returns a client for the marketplace at address, failing when no contract is deployed there
func (b *Binder) Bind(ctx context.Context, address common.Address, account string) (usecase.Marketplace, error) {
	backend, chainID, err := b.client.Backend(ctx)
	if err != nil {
		return nil, err
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: no contract at %s", domain.ErrNoDeployment, address.Hex())
	}

	return NewClient(address, backend, chainID, b.accounts, account, b.log), nil
}

var _ usecase.MarketplaceBinder = (*Binder)(nil)
