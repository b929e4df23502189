package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRegistryStore is a mock implementation of RegistryStore
type MockRegistryStore struct {
	mock.Mock
}

func (m *MockRegistryStore) Load(ctx context.Context) (domain.AddressRegistry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AddressRegistry), args.Error(1)
}

func (m *MockRegistryStore) Save(ctx context.Context, registry domain.AddressRegistry) error {
	args := m.Called(ctx, registry)
	return args.Error(0)
}

func (m *MockRegistryStore) Path() string {
	return "networkMapping.json"
}

// MockDeploymentStore is a mock implementation of DeploymentStore
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) GetDeployment(ctx context.Context, network, contractName string) (*domain.Deployment, error) {
	args := m.Called(ctx, network, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentStore) ListDeployments(ctx context.Context, network string) ([]*domain.Deployment, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentStore) SaveDeployment(ctx context.Context, deployment *domain.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetArtifact(ctx context.Context, contractName string) (*domain.Artifact, error) {
	args := m.Called(ctx, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) ListContracts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDeployer is a mock implementation of ContractDeployer
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployedContract, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeployedContract), args.Error(1)
}

// MockVerifier is a mock implementation of ContractVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, req usecase.VerifyRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// MockMarketplace is a mock implementation of Marketplace
type MockMarketplace struct {
	mock.Mock
	address common.Address
}

func (m *MockMarketplace) Address() common.Address { return m.address }

func (m *MockMarketplace) ListItem(ctx context.Context, nft common.Address, tokenID, price *big.Int) (*domain.MarketReceipt, error) {
	return m.receipt(m.Called(ctx, nft, tokenID, price))
}

func (m *MockMarketplace) BuyItem(ctx context.Context, nft common.Address, tokenID, payment *big.Int) (*domain.MarketReceipt, error) {
	return m.receipt(m.Called(ctx, nft, tokenID, payment))
}

func (m *MockMarketplace) CancelListing(ctx context.Context, nft common.Address, tokenID *big.Int) (*domain.MarketReceipt, error) {
	return m.receipt(m.Called(ctx, nft, tokenID))
}

func (m *MockMarketplace) UpdateListing(ctx context.Context, nft common.Address, tokenID, newPrice *big.Int) (*domain.MarketReceipt, error) {
	return m.receipt(m.Called(ctx, nft, tokenID, newPrice))
}

func (m *MockMarketplace) GetListing(ctx context.Context, nft common.Address, tokenID *big.Int) (*domain.Listing, error) {
	args := m.Called(ctx, nft, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketplace) GetProceeds(ctx context.Context, seller common.Address) (*big.Int, error) {
	args := m.Called(ctx, seller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockMarketplace) WithdrawProceeds(ctx context.Context) (*domain.MarketReceipt, error) {
	return m.receipt(m.Called(ctx))
}

func (m *MockMarketplace) receipt(args mock.Arguments) (*domain.MarketReceipt, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketReceipt), args.Error(1)
}

// MockBinder is a mock implementation of MarketplaceBinder
type MockBinder struct {
	mock.Mock
}

func (m *MockBinder) Bind(ctx context.Context, address common.Address, account string) (usecase.Marketplace, error) {
	args := m.Called(ctx, address, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.Marketplace), args.Error(1)
}

// MockAccounts is a mock implementation of AccountResolver
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) AccountAddress(name string) (common.Address, error) {
	args := m.Called(name)
	return args.Get(0).(common.Address), args.Error(1)
}

// RecordingProgress records info messages
type RecordingProgress struct {
	usecase.NopProgress
	infos []string
}

func (p *RecordingProgress) Info(message string) {
	p.infos = append(p.infos, message)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	args := m.Called(ctx, networkName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockNodeManager is a mock implementation of NodeManager
type MockNodeManager struct {
	mock.Mock
}

func (m *MockNodeManager) Start(ctx context.Context, node *domain.LocalNode) error {
	return m.Called(ctx, node).Error(0)
}

func (m *MockNodeManager) Stop(ctx context.Context, node *domain.LocalNode) error {
	return m.Called(ctx, node).Error(0)
}

func (m *MockNodeManager) GetStatus(ctx context.Context, node *domain.LocalNode) (*domain.NodeStatus, error) {
	args := m.Called(ctx, node)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NodeStatus), args.Error(1)
}

func (m *MockNodeManager) Logs(ctx context.Context, node *domain.LocalNode, w io.Writer) error {
	return m.Called(ctx, node, w).Error(0)
}
