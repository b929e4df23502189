package usecase

import (
	"context"
	"fmt"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	ContractName string
	// Network defaults to the selected network
	Network string
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	sink   ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*domain.Deployment, error) {
	if params.ContractName == "" {
		return nil, fmt.Errorf("contract name is required")
	}

	network := params.Network
	if network == "" {
		if uc.config.Network == nil {
			return nil, fmt.Errorf("no network selected, use --network")
		}
		network = uc.config.Network.Name
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})
	deployment, err := uc.store.GetDeployment(ctx, network, params.ContractName)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "loading"})
	if err != nil {
		return nil, err
	}
	return deployment, nil
}
