package app

import (
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.Selector
	Progress usecase.ProgressSink

	// Use cases
	RunDeployments  *usecase.RunDeployments
	DeployContract  *usecase.DeployContract
	UpdateFrontEnd  *usecase.UpdateFrontEnd
	VerifyContract  *usecase.VerifyContract
	ShowRegistry    *usecase.ShowRegistry
	ListDeployments *usecase.ListDeployments
	ShowDeployment  *usecase.ShowDeployment
	ListNetworks    *usecase.ListNetworks
	Market          *usecase.MarketOperations
	ManageNode      *usecase.ManageNode
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.Selector,
	progress usecase.ProgressSink,
	runDeployments *usecase.RunDeployments,
	deployContract *usecase.DeployContract,
	updateFrontEnd *usecase.UpdateFrontEnd,
	verifyContract *usecase.VerifyContract,
	showRegistry *usecase.ShowRegistry,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	market *usecase.MarketOperations,
	manageNode *usecase.ManageNode,
) (*App, error) {
	return &App{
		Config:          cfg,
		Selector:        selector,
		Progress:        progress,
		RunDeployments:  runDeployments,
		DeployContract:  deployContract,
		UpdateFrontEnd:  updateFrontEnd,
		VerifyContract:  verifyContract,
		ShowRegistry:    showRegistry,
		ListDeployments: listDeployments,
		ShowDeployment:  showDeployment,
		ListNetworks:    listNetworks,
		Market:          market,
		ManageNode:      manageNode,
	}, nil
}
