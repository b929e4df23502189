package config

import (
	"context"
	"sync"

	"github.com/nftmarket/nftm/internal/config"
	domainconfig "github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// NetworkResolverAdapter serves usecase.NetworkResolver from nftm.toml.
// Successful resolutions are cached for the lifetime of the command so a
// chain id fetched over RPC is only asked for once.
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver

	mu       sync.Mutex
	resolved map[string]*domainconfig.Network
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
		resolved: make(map[string]*domainconfig.Network),
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(_ context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if network, ok := a.resolved[networkName]; ok {
		copied := *network
		return &copied, nil
	}

	network, err := a.resolver.Resolve(ctx, networkName)
	if err != nil {
		return nil, err
	}
	a.resolved[networkName] = network

	copied := *network
	return &copied, nil
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
