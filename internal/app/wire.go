//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/nftmarket/nftm/internal/adapters"
	"github.com/nftmarket/nftm/internal/config"
	"github.com/nftmarket/nftm/internal/logging"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewUpdateFrontEnd,
		usecase.NewRunDeployments,
		usecase.NewVerifyContract,
		usecase.NewShowRegistry,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewMarketOperations,
		usecase.NewManageNode,

		// App
		NewApp,
	)
	return nil, nil
}
