package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainnetDeployFile = `
[contract]
name = "DeriOneV1Main"

[networks.mainnet]
chain_id = 1
rpc_url = "https://mainnet.infura.io/v3/${INFURA_API_KEY}"
gas_price = 5000000000

[[networks.mainnet.params]]
name = "ethPriceOracle"
value = "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"

[[networks.mainnet.params]]
name = "hegicETHOptionV888"
value = "0xEfC0eEAdC1132A12c9487d800112693bf49EcfA2"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDecodeDeployFile(t *testing.T) {
	t.Run("keeps parameter declaration order", func(t *testing.T) {
		file, err := DecodeDeployFile("deploy.toml", []byte(mainnetDeployFile))
		require.NoError(t, err)

		network := file.File.Networks["mainnet"]
		assert.Equal(t, uint64(1), network.ChainID)
		assert.Equal(t, uint64(5_000_000_000), network.GasPrice)
		require.Len(t, network.Params, 2)
		assert.Equal(t, "ethPriceOracle", network.Params[0].Name)
		assert.Equal(t, "hegicETHOptionV888", network.Params[1].Name)
		assert.Equal(t, "address", network.Params[0].ParamType())
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := DecodeDeployFile("deploy.toml", []byte(`
[networks.mainnet]
chain_id = 1
gasprice = 5
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "networks.mainnet.gasprice")
	})

	t.Run("reports syntax errors with the source", func(t *testing.T) {
		_, err := DecodeDeployFile("deploy.d/broken.toml", []byte(`[networks`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deploy.d/broken.toml")
	})
}

func TestLoadProject(t *testing.T) {
	t.Run("falls back to built-in profiles", func(t *testing.T) {
		project, err := LoadProject(t.TempDir())
		require.NoError(t, err)
		require.Len(t, project.Files, 1)
		assert.Equal(t, BuiltinSource, project.Files[0].Source)
		assert.Contains(t, project.Files[0].File.Networks, "mainnet")
		assert.Contains(t, project.Files[0].File.Networks, "develop")
	})

	t.Run("loads deploy.toml then sorted deploy.d", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "deploy.toml"), mainnetDeployFile)
		writeFile(t, filepath.Join(root, "deploy.d", "b.toml"), "[networks.sepolia]\nchain_id = 11155111\n")
		writeFile(t, filepath.Join(root, "deploy.d", "a.toml"), "[networks.base]\nchain_id = 8453\n")
		writeFile(t, filepath.Join(root, "deploy.d", "notes.txt"), "ignored")

		project, err := LoadProject(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"deploy.toml",
			filepath.Join("deploy.d", "a.toml"),
			filepath.Join("deploy.d", "b.toml"),
		}, project.Sources())
	})
}

func TestMergeContract(t *testing.T) {
	files := func(names ...string) []LoadedDeployFile {
		var out []LoadedDeployFile
		for i, name := range names {
			out = append(out, LoadedDeployFile{
				Source: filepath.Join("deploy.d", string(rune('a'+i))+".toml"),
				File:   config.DeployFile{Contract: config.ContractConfig{Name: name}},
			})
		}
		return out
	}

	t.Run("defaults the contract name", func(t *testing.T) {
		c, err := MergeContract(files(""))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultContractName, c.Name)
	})

	t.Run("files without a contract section inherit", func(t *testing.T) {
		c, err := MergeContract(files("DeriOneV1Main", "", "DeriOneV1Main"))
		require.NoError(t, err)
		assert.Equal(t, "DeriOneV1Main", c.Name)
	})

	t.Run("divergent names conflict", func(t *testing.T) {
		_, err := MergeContract(files("DeriOneV1Main", "DeriOneV2Main"))
		assert.ErrorIs(t, err, domain.ErrConfigurationConflict)
	})

	t.Run("arity alone is a contract section", func(t *testing.T) {
		in := files("", "")
		in[1].File.Contract.Arity = 6
		c, err := MergeContract(in)
		require.NoError(t, err)
		assert.Equal(t, 6, c.Arity)
		assert.Equal(t, config.DefaultContractName, c.Name)
	})

	t.Run("divergent arity conflicts", func(t *testing.T) {
		in := files("DeriOneV1Main", "DeriOneV1Main")
		in[0].File.Contract.Arity = 6
		in[1].File.Contract.Arity = 5
		_, err := MergeContract(in)
		assert.ErrorIs(t, err, domain.ErrConfigurationConflict)
	})

	t.Run("built-in defaults declare the constructor arity", func(t *testing.T) {
		project, err := LoadProject(t.TempDir())
		require.NoError(t, err)
		c, err := MergeContract(project.Files)
		require.NoError(t, err)
		assert.Equal(t, 6, c.Arity)
	})
}

func TestMergeCredentials(t *testing.T) {
	c, err := MergeCredentials(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRPCAPIKeyEnv, c.RPCAPIKeyEnv)
	assert.Equal(t, config.DefaultSignerKeyEnv, c.SignerKeyEnv)

	_, err = MergeCredentials([]LoadedDeployFile{
		{Source: "deploy.toml", File: config.DeployFile{Credentials: config.CredentialsConfig{SignerKeyEnv: "A"}}},
		{Source: "deploy.d/x.toml", File: config.DeployFile{Credentials: config.CredentialsConfig{SignerKeyEnv: "B"}}},
	})
	assert.ErrorIs(t, err, domain.ErrConfigurationConflict)
}
