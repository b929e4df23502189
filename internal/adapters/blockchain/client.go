package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// Backend is the subset of an Ethereum client the adapters need.
// Both *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ethereum.ChainIDReader
	ethereum.BlockNumberReader
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client lazily connects to the selected network's RPC endpoint
type Client struct {
	network *config.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID uint64
}

// NewClient creates a client for the configured network. No connection is made until first use.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{network: cfg.Network, log: log}
}

// NewClientWithBackend wraps an already connected backend
func NewClientWithBackend(backend Backend, chainID uint64) *Client {
	return &Client{backend: backend, chainID: chainID, log: slog.Default()}
}

// Backend returns the connected backend and its chain id, dialing on first call
func (c *Client) Backend(ctx context.Context) (Backend, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, c.chainID, nil
	}
	if c.network == nil {
		return nil, 0, fmt.Errorf("no network selected")
	}
	if c.network.RPCURL == "" {
		return nil, 0, fmt.Errorf("network %s has no rpc_url configured", c.network.Name)
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := verifyChainID(ctx, client, c.network.ChainID)
	if err != nil {
		client.Close()
		return nil, 0, err
	}

	c.log.Debug("connected to network", "network", c.network.Name, "chain_id", chainID)
	c.backend = client
	c.chainID = chainID
	return c.backend, c.chainID, nil
}

// verifyChainID checks the node's chain id against the expected one. An expected id of 0 accepts any.
func verifyChainID(ctx context.Context, reader ethereum.ChainIDReader, expected uint64) (uint64, error) {
	networkChainID, err := reader.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if expected != 0 && networkChainID.Uint64() != expected {
		return 0, fmt.Errorf("%w: expected %d, got %d", domain.ErrNetworkMismatch, expected, networkChainID.Uint64())
	}
	return networkChainID.Uint64(), nil
}
