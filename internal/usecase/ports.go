package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
)

// RegistryStore persists the front-end address registry
type RegistryStore interface {
	Load(ctx context.Context) (domain.AddressRegistry, error)
	Save(ctx context.Context, registry domain.AddressRegistry) error
	Path() string
}

// DeploymentStore handles persistence of deployment records
type DeploymentStore interface {
	GetDeployment(ctx context.Context, network, contractName string) (*domain.Deployment, error)
	ListDeployments(ctx context.Context, network string) ([]*domain.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *domain.Deployment) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, contractName string) (*domain.Artifact, error)
	ListContracts(ctx context.Context) ([]string, error)
}

// DeployRequest describes a single contract creation
type DeployRequest struct {
	Artifact      *domain.Artifact
	Args          []any
	From          string // named account
	Confirmations uint64
}

// DeployedContract is the handle returned once a deployment is final
type DeployedContract struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	Deployer    common.Address
	ChainID     uint64
}

// ContractDeployer submits contract creations and waits for confirmations
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*DeployedContract, error)
}

// VerifyRequest describes a contract to verify on a block explorer
type VerifyRequest struct {
	Address         common.Address
	Artifact        *domain.Artifact
	ConstructorArgs []byte
	Network         *config.Network
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req VerifyRequest) error
}

// Marketplace is the call surface of a deployed NftMarketplace contract
type Marketplace interface {
	Address() common.Address
	ListItem(ctx context.Context, nft common.Address, tokenID, price *big.Int) (*domain.MarketReceipt, error)
	BuyItem(ctx context.Context, nft common.Address, tokenID, payment *big.Int) (*domain.MarketReceipt, error)
	CancelListing(ctx context.Context, nft common.Address, tokenID *big.Int) (*domain.MarketReceipt, error)
	UpdateListing(ctx context.Context, nft common.Address, tokenID, newPrice *big.Int) (*domain.MarketReceipt, error)
	GetListing(ctx context.Context, nft common.Address, tokenID *big.Int) (*domain.Listing, error)
	GetProceeds(ctx context.Context, seller common.Address) (*big.Int, error)
	WithdrawProceeds(ctx context.Context) (*domain.MarketReceipt, error)
}

// MarketplaceBinder connects to a deployed marketplace as a named account
type MarketplaceBinder interface {
	Bind(ctx context.Context, address common.Address, account string) (Marketplace, error)
}

// AccountResolver maps named accounts to addresses
type AccountResolver interface {
	AccountAddress(name string) (common.Address, error)
}

// Confirmer asks the user to confirm an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Selector lets the user pick one option
type Selector interface {
	SelectOne(ctx context.Context, options []string, prompt string) (string, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
