package adapters

import (
	"github.com/google/wire"
	"github.com/nftmarket/nftm/internal/adapters/blockchain"
	internalconfig "github.com/nftmarket/nftm/internal/adapters/config"
	"github.com/nftmarket/nftm/internal/adapters/fs"
	"github.com/nftmarket/nftm/internal/adapters/interactive"
	"github.com/nftmarket/nftm/internal/adapters/marketplace"
	"github.com/nftmarket/nftm/internal/adapters/node"
	"github.com/nftmarket/nftm/internal/adapters/progress"
	"github.com/nftmarket/nftm/internal/adapters/repository/artifacts"
	"github.com/nftmarket/nftm/internal/adapters/verification/etherscan"
	"github.com/nftmarket/nftm/internal/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRegistryStoreAdapter,
	wire.Bind(new(usecase.RegistryStore), new(*fs.RegistryStoreAdapter)),

	fs.NewDeploymentStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStoreAdapter)),

	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// BlockchainSet provides chain access, signing and contract bindings
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	blockchain.NewAccounts,
	wire.Bind(new(usecase.AccountResolver), new(*blockchain.Accounts)),

	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.DeployerAdapter)),

	marketplace.NewBinder,
	wire.Bind(new(usecase.MarketplaceBinder), new(*marketplace.Binder)),

	node.NewManager,
	wire.Bind(new(usecase.NodeManager), new(*node.Manager)),
)

// VerificationSet provides block explorer verification
var VerificationSet = wire.NewSet(
	etherscan.NewVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*etherscan.Verifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Selector), new(*interactive.SelectorAdapter)),

	progress.NewProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
