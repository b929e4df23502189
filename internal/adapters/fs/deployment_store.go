package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// DeploymentStoreAdapter keeps one JSON record per contract under
// <deployments>/<network>/<Contract>.json
type DeploymentStoreAdapter struct {
	root string
}

// NewDeploymentStoreAdapter creates a new DeploymentStoreAdapter
func NewDeploymentStoreAdapter(cfg *config.RuntimeConfig) *DeploymentStoreAdapter {
	return &DeploymentStoreAdapter{root: cfg.DeploymentsDir}
}

// GetDeployment reads the record of a contract on a network
func (s *DeploymentStoreAdapter) GetDeployment(_ context.Context, network, contractName string) (*domain.Deployment, error) {
	path := s.recordPath(network, contractName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w of %s on %s", domain.ErrNoDeployment, contractName, network)
		}
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}

	var deployment domain.Deployment
	if err := json.Unmarshal(data, &deployment); err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	return &deployment, nil
}

// ListDeployments returns every record on a network, sorted by contract name
func (s *DeploymentStoreAdapter) ListDeployments(ctx context.Context, network string) ([]*domain.Deployment, error) {
	dir := filepath.Join(s.root, network)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.IOError{Op: "read", Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)

	deployments := make([]*domain.Deployment, 0, len(names))
	for _, name := range names {
		deployment, err := s.GetDeployment(ctx, network, name)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, deployment)
	}
	return deployments, nil
}

// SaveDeployment writes the record, replacing any previous deployment of the contract
func (s *DeploymentStoreAdapter) SaveDeployment(_ context.Context, deployment *domain.Deployment) error {
	path := s.recordPath(deployment.Network, deployment.ContractName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &domain.IOError{Op: "create", Path: filepath.Dir(path), Err: err}
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (s *DeploymentStoreAdapter) recordPath(network, contractName string) string {
	return filepath.Join(s.root, network, contractName+".json")
}

// Ensure DeploymentStoreAdapter implements DeploymentStore
var _ usecase.DeploymentStore = (*DeploymentStoreAdapter)(nil)
