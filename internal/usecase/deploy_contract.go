package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// DeployerAccount is the named account every deployment is sent from
const DeployerAccount = "deployer"

// DeployContract deploys a single contract, records it and verifies it on
// live networks when an explorer API key is configured
type DeployContract struct {
	config      *config.RuntimeConfig
	artifacts   ArtifactRepository
	deployer    ContractDeployer
	verifier    ContractVerifier
	deployments DeploymentStore
	progress    ProgressSink
	log         *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	verifier ContractVerifier,
	deployments DeploymentStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:      cfg,
		artifacts:   artifacts,
		deployer:    deployer,
		verifier:    verifier,
		deployments: deployments,
		progress:    progress,
		log:         log,
	}
}

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	ContractName string
	Args         []any
}

// DeployContractResult contains the outcome of a deployment
type DeployContractResult struct {
	Deployment   *domain.Deployment
	Verification domain.VerificationStatus
}

// Run deploys the contract and blocks until it has the configured number of confirmations
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, params.ContractName)
	if err != nil {
		return nil, err
	}

	args := params.Args
	if args == nil {
		args = []any{}
	}
	ctorArgs, err := artifact.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments for %s: %w", params.ContractName, err)
	}

	confirmations := uc.config.Confirmations()
	uc.log.Debug("deploying contract",
		"contract", params.ContractName,
		"network", network.Name,
		"confirmations", confirmations)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s (waiting for %d confirmations)", params.ContractName, confirmations),
		Spinner: true,
	})

	deployed, err := uc.deployer.Deploy(ctx, DeployRequest{
		Artifact:      artifact,
		Args:          args,
		From:          DeployerAccount,
		Confirmations: confirmations,
	})
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "deployed"})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", params.ContractName, err)
	}

	uc.progress.Info(fmt.Sprintf("deployed %q (tx: %s) at %s", params.ContractName, deployed.TxHash.Hex(), deployed.Address.Hex()))

	record := &domain.Deployment{
		ContractName:    params.ContractName,
		Network:         network.Name,
		ChainID:         deployed.ChainID,
		Address:         deployed.Address,
		TransactionHash: deployed.TxHash,
		BlockNumber:     deployed.BlockNumber,
		Deployer:        deployed.Deployer,
		Args:            formatArgs(args),
		Confirmations:   confirmations,
		ABI:             artifact.RawABI,
		DeployedAt:      time.Now().UTC(),
	}
	if len(ctorArgs) > 0 {
		record.ConstructorArgs = hexutil.Encode(ctorArgs)
	}
	if err := uc.deployments.SaveDeployment(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save deployment of %s: %w", params.ContractName, err)
	}

	result := &DeployContractResult{
		Deployment:   record,
		Verification: domain.VerificationStatusSkipped,
	}

	if !uc.shouldVerify() {
		uc.log.Debug("skipping verification",
			"contract", params.ContractName,
			"development", uc.config.IsDevelopment(),
			"apiKey", uc.config.EtherscanAPIKey != "")
		return result, nil
	}

	uc.progress.Info("Verifying . . .")
	err = uc.verifier.Verify(ctx, VerifyRequest{
		Address:         deployed.Address,
		Artifact:        artifact,
		ConstructorArgs: ctorArgs,
		Network:         network,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify %s at %s: %w", params.ContractName, deployed.Address.Hex(), err)
	}

	record.Verified = true
	if err := uc.deployments.SaveDeployment(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save deployment of %s: %w", params.ContractName, err)
	}
	result.Verification = domain.VerificationStatusVerified

	return result, nil
}

// shouldVerify reports whether explorer verification applies to the active network
func (uc *DeployContract) shouldVerify() bool {
	return !uc.config.IsDevelopment() && uc.config.EtherscanAPIKey != ""
}

func formatArgs(args []any) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, fmt.Sprint(arg))
	}
	return out
}
