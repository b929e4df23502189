package usecase

import (
	"context"

	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/samber/lo"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Current  string          `json:"current,omitempty"`
	Networks []NetworkStatus `json:"networks"`
}

// NetworkStatus describes one configured network. Error is set when it could not be resolved.
type NetworkStatus struct {
	Name          string `json:"name"`
	ChainID       uint64 `json:"chainId,omitempty"`
	RPCURL        string `json:"rpcUrl,omitempty"`
	ExplorerURL   string `json:"explorerUrl,omitempty"`
	Development   bool   `json:"development"`
	Confirmations uint64 `json:"confirmations,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run resolves every known network. Resolution failures are reported per network.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	result := &ListNetworksResult{
		Networks: lo.Map(uc.resolver.GetNetworks(ctx), func(name string, _ int) NetworkStatus {
			return uc.status(ctx, name)
		}),
	}
	if uc.config.Network != nil {
		result.Current = uc.config.Network.Name
	}
	return result, nil
}

func (uc *ListNetworks) status(ctx context.Context, name string) NetworkStatus {
	status := NetworkStatus{
		Name:        name,
		Development: lo.Contains(uc.config.DevelopmentChains, name),
	}

	network, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.ChainID = network.ChainID
	status.RPCURL = network.RPCURL
	status.ExplorerURL = network.ExplorerURL
	status.Confirmations = max(network.BlockConfirmations, 1)
	return status
}
