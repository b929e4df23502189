package usecase

import (
	"context"

	"github.com/nftmarket/nftm/internal/domain"
)

// ShowRegistry loads the front-end address registry for display
type ShowRegistry struct {
	registry RegistryStore
}

// NewShowRegistry creates a new ShowRegistry use case
func NewShowRegistry(registry RegistryStore) *ShowRegistry {
	return &ShowRegistry{registry: registry}
}

// ShowRegistryParams narrows the registry to one network
type ShowRegistryParams struct {
	Network string
}

// ShowRegistryResult contains the loaded registry
type ShowRegistryResult struct {
	Path     string
	Registry domain.AddressRegistry
}

// Run loads the registry, optionally keeping only one network
func (uc *ShowRegistry) Run(ctx context.Context, params ShowRegistryParams) (*ShowRegistryResult, error) {
	registry, err := uc.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	if params.Network != "" {
		filtered := domain.NewAddressRegistry()
		if contracts, ok := registry[params.Network]; ok {
			filtered[params.Network] = contracts
		}
		registry = filtered
	}

	return &ShowRegistryResult{
		Path:     uc.registry.Path(),
		Registry: registry,
	}, nil
}
