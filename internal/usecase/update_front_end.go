package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// UpdateFrontEnd records freshly deployed contract addresses in the
// front-end address registry
type UpdateFrontEnd struct {
	config      *config.RuntimeConfig
	registry    RegistryStore
	deployments DeploymentStore
	progress    ProgressSink
	log         *slog.Logger
}

// NewUpdateFrontEnd creates a new UpdateFrontEnd use case
func NewUpdateFrontEnd(
	cfg *config.RuntimeConfig,
	registry RegistryStore,
	deployments DeploymentStore,
	progress ProgressSink,
	log *slog.Logger,
) *UpdateFrontEnd {
	return &UpdateFrontEnd{
		config:      cfg,
		registry:    registry,
		deployments: deployments,
		progress:    progress,
		log:         log,
	}
}

// UpdateFrontEndParams contains parameters for updating the registry
type UpdateFrontEndParams struct {
	// Force runs the update even when UPDATE_FRONT_END is not set
	Force bool
	// Contracts to record, defaults to the marketplace only
	Contracts []string
}

// RecordedAddress is one merge into the registry
type RecordedAddress struct {
	Contract string
	Address  string
	Added    bool
}

// UpdateFrontEndResult contains the outcome of a registry update
type UpdateFrontEndResult struct {
	Skipped    bool
	Path       string
	NetworkKey string
	Recorded   []RecordedAddress
	Registry   domain.AddressRegistry
}

// Run merges the deployed addresses into the registry and rewrites it in full
func (uc *UpdateFrontEnd) Run(ctx context.Context, params UpdateFrontEndParams) (*UpdateFrontEndResult, error) {
	if !uc.config.UpdateFrontEnd && !params.Force {
		uc.log.Debug("front end update disabled")
		return &UpdateFrontEndResult{Skipped: true, Path: uc.registry.Path()}, nil
	}
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	uc.progress.Info("updating front end ... ")

	contracts := params.Contracts
	if len(contracts) == 0 {
		contracts = []string{domain.MarketplaceContract}
	}

	key := uc.networkKey()
	registry, err := uc.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &UpdateFrontEndResult{
		Path:       uc.registry.Path(),
		NetworkKey: key,
		Registry:   registry,
	}
	for _, name := range contracts {
		deployment, err := uc.deployments.GetDeployment(ctx, uc.config.Network.Name, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s deployment on %s: %w", name, uc.config.Network.Name, err)
		}
		address := deployment.Address.Hex()
		added := registry.Merge(key, name, address)
		uc.log.Debug("merged address", "network", key, "contract", name, "address", address, "added", added)
		result.Recorded = append(result.Recorded, RecordedAddress{Contract: name, Address: address, Added: added})
	}

	// The registry is rewritten even when nothing changed.
	if err := uc.registry.Save(ctx, registry); err != nil {
		return nil, err
	}

	return result, nil
}

// networkKey returns the identifier the registry is keyed by on the active network
func (uc *UpdateFrontEnd) networkKey() string {
	if uc.config.FrontEndKey == config.RegistryKeyName {
		return uc.config.Network.Name
	}
	return strconv.FormatUint(uc.config.Network.ChainID, 10)
}
