package adapters

import (
	"github.com/deri-protocol/deri-deploy/internal/adapters/abi"
	"github.com/deri-protocol/deri-deploy/internal/adapters/anvil"
	"github.com/deri-protocol/deri-deploy/internal/adapters/artifact"
	"github.com/deri-protocol/deri-deploy/internal/adapters/blockchain"
	"github.com/deri-protocol/deri-deploy/internal/adapters/interactive"
	"github.com/deri-protocol/deri-deploy/internal/adapters/progress"
	"github.com/deri-protocol/deri-deploy/internal/adapters/repository/deployments"
	"github.com/deri-protocol/deri-deploy/internal/config"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/google/wire"
)

// ConfigSet exposes the profile table and credentials to the use cases
var ConfigSet = wire.NewSet(
	wire.Bind(new(usecase.ProfileSource), new(*config.ProfileTable)),
	wire.Bind(new(usecase.CredentialSource), new(*config.Credentials)),
)

// ContractSet provides artifact loading and constructor encoding
var ContractSet = wire.NewSet(
	artifact.NewArtifactLoader,
	wire.Bind(new(usecase.ArtifactLoader), new(*artifact.ArtifactLoader)),

	abi.NewConstructorEncoder,
	wire.Bind(new(usecase.ConstructorEncoder), new(*abi.ConstructorEncoder)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.DeploymentExecutor), new(*blockchain.DeployerAdapter)),

	anvil.NewManager,
	wire.Bind(new(usecase.DevNodeManager), new(*anvil.Manager)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	deployments.ProvideFileRepository,
	wire.Bind(new(usecase.DeploymentStore), new(*deployments.FileRepository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),

	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ConfigSet,
	ContractSet,
	BlockchainSet,
	FSSet,
	InteractiveSet,
)
