package anvil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(&config.RuntimeConfig{DataDir: t.TempDir()})
	m.pollInterval = 5 * time.Millisecond
	m.startupTimeout = 50 * time.Millisecond
	return m
}

func TestBuildAnvilArgs_Basic(t *testing.T) {
	instance := &domain.DevNodeInstance{
		Port: "8545",
	}
	args := buildAnvilArgs(instance)
	assert.Equal(t, []string{"--port", "8545", "--host", "127.0.0.1"}, args)
}

func TestBuildAnvilArgs_WithChainIDAndForkURL(t *testing.T) {
	instance := &domain.DevNodeInstance{
		Port:    "9000",
		ChainID: 1,
		ForkURL: "https://mainnet.infura.io/v3/key",
	}
	args := buildAnvilArgs(instance)
	assert.Equal(t, []string{
		"--port", "9000",
		"--host", "127.0.0.1",
		"--chain-id", "1",
		"--fork-url", "https://mainnet.infura.io/v3/key",
	}, args)
}

func TestSetFilePaths_DefaultInstance(t *testing.T) {
	m := NewManager(&config.RuntimeConfig{DataDir: "/project/.deri"})
	instance := &domain.DevNodeInstance{}
	m.setFilePaths(instance)

	assert.Equal(t, "develop", instance.Name)
	assert.Equal(t, DefaultAnvilPort, instance.Port)
	assert.Equal(t, "/project/.deri/anvil-develop.pid", instance.PidFile)
	assert.Equal(t, "/project/.deri/anvil-develop.log", instance.LogFile)
}

func TestSetFilePaths_PresetPathsPreserved(t *testing.T) {
	m := NewManager(&config.RuntimeConfig{DataDir: "/project/.deri"})
	instance := &domain.DevNodeInstance{
		Name:    "fork",
		PidFile: "/custom/path/my.pid",
		LogFile: "/custom/path/my.log",
	}
	m.setFilePaths(instance)

	assert.Equal(t, "/custom/path/my.pid", instance.PidFile)
	assert.Equal(t, "/custom/path/my.log", instance.LogFile)
}

type rpcRequest struct {
	Method string          `json:"method"`
	ID     json.RawMessage `json:"id"`
}

type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Result  interface{}     `json:"result"`
	ID      json.RawMessage `json:"id"`
}

// newMockRPCServer answers eth_blockNumber and eth_chainId like a mainnet fork
func newMockRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode RPC request: %v", err)
			return
		}
		resp := rpcResponse{Jsonrpc: "2.0", ID: req.ID}
		switch req.Method {
		case "eth_blockNumber":
			resp.Result = "0xb5a8c0"
		case "eth_chainId":
			resp.Result = "0x1"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func portOf(server *httptest.Server) string {
	parts := strings.Split(server.URL, ":")
	return parts[len(parts)-1]
}

func TestGetStatus_NotRunning(t *testing.T) {
	m := newTestManager(t)
	status, err := m.GetStatus(context.Background(), &domain.DevNodeInstance{})
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Equal(t, filepath.Join(m.dataDir, "anvil-develop.log"), status.LogFile)
}

func TestGetStatus_RunningAndHealthy(t *testing.T) {
	server := newMockRPCServer(t)
	defer server.Close()

	m := newTestManager(t)
	instance := &domain.DevNodeInstance{Port: portOf(server)}
	m.setFilePaths(instance)
	// the test process stands in for anvil
	require.NoError(t, writePidFile(instance.PidFile, os.Getpid()))

	status, err := m.GetStatus(context.Background(), instance)
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, os.Getpid(), status.PID)
	assert.True(t, status.RPCHealthy)
	assert.Equal(t, uint64(0xb5a8c0), status.BlockNumber)
	assert.Equal(t, uint64(1), status.ChainID)
}

func TestGetStatus_RunningButUnreachable(t *testing.T) {
	m := newTestManager(t)
	instance := &domain.DevNodeInstance{Port: "1"}
	m.setFilePaths(instance)
	require.NoError(t, writePidFile(instance.PidFile, os.Getpid()))

	status, err := m.GetStatus(context.Background(), instance)
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.False(t, status.RPCHealthy)
	assert.NotEmpty(t, status.Error)
}

func TestStart_MissingBinary(t *testing.T) {
	m := newTestManager(t)
	m.binary = filepath.Join(t.TempDir(), "no-such-anvil")

	err := m.Start(context.Background(), &domain.DevNodeInstance{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start anvil")
}

func TestStop_NoPidFile(t *testing.T) {
	m := newTestManager(t)
	err := m.Stop(context.Background(), &domain.DevNodeInstance{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read PID file")
}

func TestReadPidFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))

	_, err := readPidFile(path)
	assert.ErrorContains(t, err, "invalid PID")

	require.NoError(t, writePidFile(path, 1234))
	pid, err := readPidFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1234, pid)
}

func TestStreamLogs(t *testing.T) {
	m := newTestManager(t)
	instance := &domain.DevNodeInstance{}
	m.setFilePaths(instance)
	require.NoError(t, os.WriteFile(instance.LogFile, []byte("Listening on 127.0.0.1:8545\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, m.StreamLogs(ctx, instance, &buf))
	assert.Equal(t, "Listening on 127.0.0.1:8545\n", buf.String())
}

func TestStreamLogs_MissingFile(t *testing.T) {
	m := newTestManager(t)
	err := m.StreamLogs(context.Background(), &domain.DevNodeInstance{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "log file does not exist")
}
