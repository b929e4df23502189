package config

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultDevelopmentChains never get explorer verification
var DefaultDevelopmentChains = []string{"hardhat", "localhost"}

// builtinNetworks are available without configuration
var builtinNetworks = map[string]config.NetworkConfig{
	"hardhat":   {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
	"localhost": {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
}

// ChainIDFetcher asks a node for its chain id
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names from nftm.toml and the built-in development networks
type NetworkResolver struct {
	networks     map[string]config.NetworkConfig
	fetchChainID ChainIDFetcher
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	networks := make(map[string]config.NetworkConfig, len(builtinNetworks))
	for name, network := range builtinNetworks {
		networks[name] = network
	}
	if project != nil {
		for name, network := range project.Networks {
			networks[name] = network
		}
	}
	return &NetworkResolver{networks: networks, fetchChainID: fetchChainID}
}

// WithChainIDFetcher replaces how chain ids are fetched for networks without chain_id
func (r *NetworkResolver) WithChainIDFetcher(fetch ChainIDFetcher) *NetworkResolver {
	r.fetchChainID = fetch
	return r
}

// GetNetworks returns all known network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := lo.Keys(r.networks)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration, asking the node for its chain id when unset
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	nc, exists := r.networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ProjectFile)
	}

	chainID := nc.ChainID
	if chainID == 0 {
		if nc.RPCURL == "" {
			return nil, fmt.Errorf("network %s has neither chain_id nor rpc_url", networkName)
		}
		fetched, err := r.fetchChainID(ctx, nc.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
		}
		chainID = fetched
	}

	explorerURL := nc.Explorer.URL
	if explorerURL == "" {
		explorerURL = defaultExplorerURL(chainID)
	}

	return &config.Network{
		Name:               networkName,
		ChainID:            chainID,
		RPCURL:             nc.RPCURL,
		ExplorerURL:        explorerURL,
		ExplorerAPIURL:     nc.Explorer.APIURL,
		BlockConfirmations: nc.BlockConfirmations,
	}, nil
}

func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// defaultExplorerURL returns the public explorer of well-known chains
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 80002:
		return "https://amoy.polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}
