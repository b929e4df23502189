package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/nftmarket/nftm/internal/usecase"
)

// DeployerAdapter deploys compiled artifacts with go-ethereum's bind package
type DeployerAdapter struct {
	client       *Client
	accounts     *Accounts
	log          *slog.Logger
	pollInterval time.Duration
}

// NewDeployerAdapter creates a new deployer
func NewDeployerAdapter(client *Client, accounts *Accounts, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		client:       client,
		accounts:     accounts,
		log:          log,
		pollInterval: time.Second,
	}
}

// Deploy sends the creation transaction and blocks until it has the requested confirmations
func (d *DeployerAdapter) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployedContract, error) {
	backend, chainID, err := d.client.Backend(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := d.accounts.Transactor(req.From, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(opts, req.Artifact.ABI, req.Artifact.Bytecode, backend, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", req.Artifact.ContractName, err)
	}
	d.log.Debug("deployment sent", "contract", req.Artifact.ContractName, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s deployment: %w", req.Artifact.ContractName, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("deployment of %s failed in tx %s", req.Artifact.ContractName, tx.Hash().Hex())
	}

	if err := d.waitConfirmations(ctx, backend, receipt.BlockNumber.Uint64(), req.Confirmations); err != nil {
		return nil, err
	}

	return &usecase.DeployedContract{
		Address:     receipt.ContractAddress,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Deployer:    opts.From,
		ChainID:     chainID,
	}, nil
}

// waitConfirmations blocks until the chain head is confirmations-1 blocks past the inclusion block
func (d *DeployerAdapter) waitConfirmations(ctx context.Context, backend Backend, included, confirmations uint64) error {
	if confirmations <= 1 {
		return nil
	}
	target := included + confirmations - 1

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		head, err := backend.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get block number: %w", err)
		}
		if head >= target {
			return nil
		}
		d.log.Debug("waiting for confirmations", "head", head, "target", target)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

var _ usecase.ContractDeployer = (*DeployerAdapter)(nil)
