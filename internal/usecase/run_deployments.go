package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/samber/lo"
)

// ErrDeploymentCancelled is returned when the user declines a live deployment
var ErrDeploymentCancelled = errors.New("deployment cancelled")

// DeployStep is one numbered deployment script
type DeployStep struct {
	ID       string
	Name     string
	Tags     []domain.DeployTag
	Contract string // empty for non-deployment steps
}

// DeploySteps lists the deployment scripts in execution order
var DeploySteps = []DeployStep{
	{ID: "01", Name: "deploy-nft-marketplace", Tags: []domain.DeployTag{domain.TagAll, domain.TagNftMarketplace}, Contract: domain.MarketplaceContract},
	{ID: "02", Name: "deploy-basic-nft", Tags: []domain.DeployTag{domain.TagAll, domain.TagBasicNft}, Contract: domain.BasicNftContract},
	{ID: "99", Name: "update-front-end", Tags: []domain.DeployTag{domain.TagAll, domain.TagFrontEnd}},
}

// RunDeployments runs the deployment scripts selected by tag, one after the other
type RunDeployments struct {
	config    *config.RuntimeConfig
	deploy    *DeployContract
	frontEnd  *UpdateFrontEnd
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewRunDeployments creates a new RunDeployments use case
func NewRunDeployments(
	cfg *config.RuntimeConfig,
	deploy *DeployContract,
	frontEnd *UpdateFrontEnd,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *RunDeployments {
	return &RunDeployments{
		config:    cfg,
		deploy:    deploy,
		frontEnd:  frontEnd,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// RunDeploymentsParams contains parameters for a deployment run
type RunDeploymentsParams struct {
	Tags           []string
	UpdateFrontEnd bool
}

// StepResult is the outcome of one deployment script
type StepResult struct {
	Step       DeployStep
	Deployment *DeployContractResult
	FrontEnd   *UpdateFrontEndResult
}

// RunDeploymentsResult contains the outcome of a deployment run
type RunDeploymentsResult struct {
	Network *config.Network
	Steps   []*StepResult
}

// SelectSteps returns the steps carrying any of the given tags, in execution order
func SelectSteps(tags []string) ([]DeployStep, error) {
	if len(tags) == 0 {
		tags = []string{string(domain.TagAll)}
	}
	known := lo.Uniq(lo.FlatMap(DeploySteps, func(s DeployStep, _ int) []domain.DeployTag { return s.Tags }))
	for _, tag := range tags {
		if !lo.Contains(known, domain.DeployTag(tag)) {
			return nil, fmt.Errorf("unknown tag %q (known: %v)", tag, known)
		}
	}

	return lo.Filter(DeploySteps, func(s DeployStep, _ int) bool {
		return lo.SomeBy(s.Tags, func(t domain.DeployTag) bool {
			return lo.Contains(tags, string(t))
		})
	}), nil
}

// Run executes the selected steps. The first failure aborts the run.
func (uc *RunDeployments) Run(ctx context.Context, params RunDeploymentsParams) (*RunDeploymentsResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	steps, err := SelectSteps(params.Tags)
	if err != nil {
		return nil, err
	}

	if !uc.config.IsDevelopment() && !uc.config.NonInteractive {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy to %s (chain %d)", network.Name, network.ChainID))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeploymentCancelled
		}
	}

	result := &RunDeploymentsResult{Network: network}
	for _, step := range steps {
		uc.log.Debug("running deployment step", "id", step.ID, "name", step.Name)
		stepResult := &StepResult{Step: step}

		if step.Contract != "" {
			deployment, err := uc.deploy.Run(ctx, DeployContractParams{ContractName: step.Contract})
			if err != nil {
				return result, fmt.Errorf("step %s-%s: %w", step.ID, step.Name, err)
			}
			stepResult.Deployment = deployment
		} else {
			frontEnd, err := uc.frontEnd.Run(ctx, UpdateFrontEndParams{Force: params.UpdateFrontEnd})
			if err != nil {
				return result, fmt.Errorf("step %s-%s: %w", step.ID, step.Name, err)
			}
			stepResult.FrontEnd = frontEnd
		}

		result.Steps = append(result.Steps, stepResult)
	}

	return result, nil
}
