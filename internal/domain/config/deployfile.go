package config

import "github.com/deri-protocol/deri-deploy/internal/domain"

// DeployFile represents one deploy.toml (or deploy.d/*.toml) document.
type DeployFile struct {
	Contract    ContractConfig           `toml:"contract"`
	Credentials CredentialsConfig        `toml:"credentials"`
	Networks    map[string]NetworkConfig `toml:"networks"`
}

// ContractConfig names the contract every network deploys.
type ContractConfig struct {
	Name     string `toml:"name"`
	Artifact string `toml:"artifact,omitempty"` // optional explicit artifact path
	// Arity is the expected constructor argument count, checked when no
	// compiled artifact is available. Zero disables the check.
	Arity int `toml:"arity,omitempty"`
}

// CredentialsConfig names the environment variables holding secrets.
type CredentialsConfig struct {
	RPCAPIKeyEnv string `toml:"rpc_api_key_env,omitempty"`
	SignerKeyEnv string `toml:"signer_key_env,omitempty"`
}

// NetworkConfig is the [networks.<name>] table.
type NetworkConfig struct {
	ChainID    uint64             `toml:"chain_id"`
	RPCURL     string             `toml:"rpc_url"`
	ForkURL    string             `toml:"fork_url,omitempty"`
	Gas        uint64             `toml:"gas,omitempty"`
	GasPrice   uint64             `toml:"gas_price,omitempty"`
	SkipDryRun bool               `toml:"skip_dry_run,omitempty"`
	Params     []domain.Parameter `toml:"params"`
}

// Defaults applied when a deploy file leaves a setting out
const (
	DefaultContractName = "DeriOneV1Main"
	DefaultRPCAPIKeyEnv = "INFURA_API_KEY"
	DefaultSignerKeyEnv = "DEPLOYER_PRIVATE_KEY"
	DefaultGasLimit     = 5_000_000
)
