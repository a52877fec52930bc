package app

import (
	"log/slog"

	"github.com/deri-protocol/deri-deploy/internal/config"
	domainconfig "github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config      *domainconfig.RuntimeConfig
	Profiles    *config.ProfileTable
	Credentials *config.Credentials
	Logger      *slog.Logger

	// Shared dependencies
	Selector usecase.NetworkSelector

	// Use cases
	ResolveDeployment *usecase.ResolveDeployment
	DeployContract    *usecase.DeployContract
	ListNetworks      *usecase.ListNetworks
	ListDeployments   *usecase.ListDeployments
	ManageDevNode     *usecase.ManageDevNode
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *domainconfig.RuntimeConfig,
	profiles *config.ProfileTable,
	credentials *config.Credentials,
	logger *slog.Logger,
	selector usecase.NetworkSelector,
	resolveDeployment *usecase.ResolveDeployment,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	manageDevNode *usecase.ManageDevNode,
) *App {
	return &App{
		Config:            cfg,
		Profiles:          profiles,
		Credentials:       credentials,
		Logger:            logger,
		Selector:          selector,
		ResolveDeployment: resolveDeployment,
		DeployContract:    deployContract,
		ListNetworks:      listNetworks,
		ListDeployments:   listDeployments,
		ManageDevNode:     manageDevNode,
	}
}
