package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Network defaults to the selected network
	Network      string
	ContractName string
}

// DeploymentSummary counts the listed deployments
type DeploymentSummary struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
}

// DeploymentListResult is the outcome of ListDeployments
type DeploymentListResult struct {
	Network     string               `json:"network"`
	Deployments []*domain.Deployment `json:"deployments"`
	Summary     DeploymentSummary    `json:"summary"`
}

// ListDeployments is the use case for listing deployment records of a network
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	network := params.Network
	if network == "" {
		if uc.config.Network == nil {
			return nil, fmt.Errorf("no network selected, use --network")
		}
		network = uc.config.Network.Name
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	deployments, err := uc.store.ListDeployments(ctx, network)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "loading"})
	if err != nil {
		return nil, err
	}

	if params.ContractName != "" {
		filtered := deployments[:0]
		for _, dep := range deployments {
			if dep.ContractName == params.ContractName {
				filtered = append(filtered, dep)
			}
		}
		deployments = filtered
	}

	sortDeployments(deployments)

	return &DeploymentListResult{
		Network:     network,
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts deployments by contract name, then by block
func sortDeployments(deployments []*domain.Deployment) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].ContractName != deployments[j].ContractName {
			return deployments[i].ContractName < deployments[j].ContractName
		}
		return deployments[i].BlockNumber < deployments[j].BlockNumber
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*domain.Deployment) DeploymentSummary {
	summary := DeploymentSummary{Total: len(deployments)}
	for _, dep := range deployments {
		if dep.Verified {
			summary.Verified++
		}
	}
	return summary
}
