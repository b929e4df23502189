package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// VerifyContract verifies an already deployed contract on the network's block explorer
type VerifyContract struct {
	config      *config.RuntimeConfig
	artifacts   ArtifactRepository
	verifier    ContractVerifier
	deployments DeploymentStore
	progress    ProgressSink
	log         *slog.Logger
}

// NewVerifyContract creates a new VerifyContract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	verifier ContractVerifier,
	deployments DeploymentStore,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyContract {
	return &VerifyContract{
		config:      cfg,
		artifacts:   artifacts,
		verifier:    verifier,
		deployments: deployments,
		progress:    progress,
		log:         log,
	}
}

// VerifyContractParams contains parameters for verification
type VerifyContractParams struct {
	ContractName string
	Force        bool // re-verify even if already verified
}

// VerifyContractResult contains the result of verification
type VerifyContractResult struct {
	Deployment *domain.Deployment
	Status     domain.VerificationStatus
	Reason     string
	// ExplorerURL is the block explorer of the network, empty when unknown
	ExplorerURL string
}

// Run verifies the recorded deployment of a contract
func (uc *VerifyContract) Run(ctx context.Context, params VerifyContractParams) (*VerifyContractResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}
	if uc.config.IsDevelopment() {
		return nil, fmt.Errorf("%s is a development network, nothing to verify", network.Name)
	}
	if uc.config.EtherscanAPIKey == "" {
		return nil, fmt.Errorf("ETHERSCAN_API_KEY is not set")
	}

	deployment, err := uc.deployments.GetDeployment(ctx, network.Name, params.ContractName)
	if err != nil {
		return nil, err
	}
	if deployment.Verified && !params.Force {
		return &VerifyContractResult{
			Deployment: deployment,
			Status:     domain.VerificationStatusSkipped,
			Reason:     "Already verified. Use --force to re-verify.",
		}, nil
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, params.ContractName)
	if err != nil {
		return nil, err
	}

	var ctorArgs []byte
	if deployment.ConstructorArgs != "" {
		ctorArgs, err = hexutil.Decode(deployment.ConstructorArgs)
		if err != nil {
			return nil, fmt.Errorf("invalid constructor arguments in %s deployment: %w", params.ContractName, err)
		}
	}

	uc.progress.Info("Verifying . . .")
	if err := uc.verifier.Verify(ctx, VerifyRequest{
		Address:         deployment.Address,
		Artifact:        artifact,
		ConstructorArgs: ctorArgs,
		Network:         network,
	}); err != nil {
		return &VerifyContractResult{
			Deployment: deployment,
			Status:     domain.VerificationStatusFailed,
			Reason:     err.Error(),
		}, err
	}

	deployment.Verified = true
	if err := uc.deployments.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("failed to save deployment of %s: %w", params.ContractName, err)
	}
	uc.log.Debug("contract verified", "contract", params.ContractName, "address", deployment.Address.Hex())

	return &VerifyContractResult{
		Deployment:  deployment,
		Status:      domain.VerificationStatusVerified,
		ExplorerURL: network.ExplorerURL,
	}, nil
}
