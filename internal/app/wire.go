//go:build wireinject
// +build wireinject

package app

import (
	"github.com/deri-protocol/deri-deploy/internal/adapters"
	"github.com/deri-protocol/deri-deploy/internal/config"
	"github.com/deri-protocol/deri-deploy/internal/logging"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.ProvideProject,
		config.Provider,
		config.ProvideProfileTable,
		config.ProvideCredentials,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveDeployment,
		usecase.NewDeployContract,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewManageDevNode,

		// App
		NewApp,
	)
	return nil, nil
}
