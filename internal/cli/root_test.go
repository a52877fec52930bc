package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandTree(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"resolve", "deploy", "networks", "deployments", "dev", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"start", "stop", "restart", "status", "logs"} {
		sub, _, err := cmd.Find([]string{"dev", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "deri version dev\n", out)
}

func TestResolveCommand(t *testing.T) {
	root := t.TempDir()

	t.Run("built-in mainnet profile", func(t *testing.T) {
		out, err := runCommand(t, "resolve", "mainnet", "--project-root", root, "--format", "json", "--non-interactive")
		require.NoError(t, err)

		var view domain.DeploymentSpecView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "mainnet", view.Network)
		assert.Equal(t, "DeriOneV1Main", view.Contract)
		require.Len(t, view.Args, 6)
		assert.Equal(t, "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419", view.Args[0].Value)
		assert.False(t, view.ArityChecked)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := runCommand(t, "resolve", "mainnt", "--project-root", root, "--non-interactive")
		require.Error(t, err)
		assert.Equal(t, domain.ExitUnknownNetwork, domain.ExitCode(err))
	})

	t.Run("missing network in non-interactive mode", func(t *testing.T) {
		_, err := runCommand(t, "resolve", "--project-root", root, "--non-interactive")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--network is required")
	})

	t.Run("invalid parameter from project deploy file", func(t *testing.T) {
		project := t.TempDir()
		deployFile := `
[networks.kovan]
chain_id = 42
rpc_url = "http://127.0.0.1:8545"

[[networks.kovan.params]]
name = "ethPriceOracle"
value = ""
`
		require.NoError(t, os.WriteFile(filepath.Join(project, "deploy.toml"), []byte(deployFile), 0o644))

		_, err := runCommand(t, "resolve", "--network", "kovan", "--project-root", project, "--non-interactive")
		require.Error(t, err)
		assert.Equal(t, domain.ExitInvalidParameter, domain.ExitCode(err))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := runCommand(t, "resolve", "mainnet", "--project-root", root, "--format", "xml")
		assert.ErrorContains(t, err, "unsupported output format")
	})
}

func TestNetworksCommand(t *testing.T) {
	out, err := runCommand(t, "networks", "--project-root", t.TempDir(), "--json")
	require.NoError(t, err)

	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "develop", views[0]["name"])
	assert.Equal(t, "mainnet", views[1]["name"])
}

func TestDeploymentsCommandEmpty(t *testing.T) {
	out, err := runCommand(t, "deployments", "--project-root", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No deployments found\n", out)
}
