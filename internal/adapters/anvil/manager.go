package anvil

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	// DefaultAnvilPort is used when the instance has no port
	DefaultAnvilPort = "8545"
	// DefaultInstanceName is used when the instance has no name
	DefaultInstanceName = "develop"
)

// Manager runs anvil forks as background processes tracked by pid files
// under the project data dir.
type Manager struct {
	dataDir        string
	binary         string
	startupTimeout time.Duration
	pollInterval   time.Duration
}

// NewManager creates a new anvil manager
func NewManager(cfg *config.RuntimeConfig) *Manager {
	return &Manager{
		dataDir:        cfg.DataDir,
		binary:         "anvil",
		startupTimeout: 30 * time.Second,
		pollInterval:   250 * time.Millisecond,
	}
}

// Start launches anvil and waits until its RPC endpoint answers
func (m *Manager) Start(ctx context.Context, instance *domain.DevNodeInstance) error {
	m.setFilePaths(instance)

	if m.isRunning(instance) {
		return fmt.Errorf("anvil is already running (PID file exists at %s)", instance.PidFile)
	}
	if err := os.MkdirAll(filepath.Dir(instance.PidFile), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(instance.PidFile), err)
	}

	// Create log file
	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	// The process outlives this command, so it is not bound to ctx
	cmd := exec.Command(m.binary, buildAnvilArgs(instance)...) //nolint:gosec // fixed binary
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}

	// Write PID file
	if err := writePidFile(instance.PidFile, cmd.Process.Pid); err != nil {
		// Kill the process if we can't write PID file
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	if err := m.waitReady(ctx, instance); err != nil {
		_ = cmd.Process.Kill()
		_ = os.Remove(instance.PidFile)
		return fmt.Errorf("anvil did not become ready (see %s): %w", instance.LogFile, err)
	}
	return nil
}

// Stop terminates the anvil process and removes its PID file
func (m *Manager) Stop(ctx context.Context, instance *domain.DevNodeInstance) error {
	m.setFilePaths(instance)

	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		// If SIGTERM fails, try SIGKILL
		if err := process.Kill(); err != nil && !strings.Contains(err.Error(), "process already finished") {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the process is alive and its RPC healthy
func (m *Manager) GetStatus(ctx context.Context, instance *domain.DevNodeInstance) (*domain.DevNodeStatus, error) {
	m.setFilePaths(instance)

	status := &domain.DevNodeStatus{
		LogFile: instance.LogFile,
	}

	pid, err := readPidFile(instance.PidFile)
	if err != nil || !processAlive(pid) {
		return status, nil
	}
	status.Running = true
	status.PID = pid
	status.RPCURL = instance.RPCURL()

	blockNumber, chainID, err := probeRPC(ctx, instance.RPCURL())
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.BlockNumber = blockNumber
	status.ChainID = chainID
	return status, nil
}

// StreamLogs copies the log file to writer and follows it until ctx ends
func (m *Manager) StreamLogs(ctx context.Context, instance *domain.DevNodeInstance, writer io.Writer) error {
	m.setFilePaths(instance)

	f, err := os.Open(instance.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: %s", instance.LogFile)
		}
		return err
	}
	defer f.Close()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := io.Copy(writer, f); err != nil {
			return fmt.Errorf("failed to read log file: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// setFilePaths fills in defaults for the name, port and state files
func (m *Manager) setFilePaths(instance *domain.DevNodeInstance) {
	if instance.Name == "" {
		instance.Name = DefaultInstanceName
	}
	if instance.Port == "" {
		instance.Port = DefaultAnvilPort
	}
	if instance.PidFile == "" {
		instance.PidFile = filepath.Join(m.dataDir, fmt.Sprintf("anvil-%s.pid", instance.Name))
	}
	if instance.LogFile == "" {
		instance.LogFile = filepath.Join(m.dataDir, fmt.Sprintf("anvil-%s.log", instance.Name))
	}
}

func (m *Manager) isRunning(instance *domain.DevNodeInstance) bool {
	pid, err := readPidFile(instance.PidFile)
	return err == nil && processAlive(pid)
}

func (m *Manager) waitReady(ctx context.Context, instance *domain.DevNodeInstance) error {
	ctx, cancel := context.WithTimeout(ctx, m.startupTimeout)
	defer cancel()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		_, _, err := probeRPC(ctx, instance.RPCURL())
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return err
		case <-ticker.C:
		}
	}
}

// buildAnvilArgs constructs the command-line arguments for anvil
func buildAnvilArgs(instance *domain.DevNodeInstance) []string {
	args := []string{"--port", instance.Port, "--host", "127.0.0.1"}
	if instance.ChainID != 0 {
		args = append(args, "--chain-id", strconv.FormatUint(instance.ChainID, 10))
	}
	if instance.ForkURL != "" {
		args = append(args, "--fork-url", instance.ForkURL)
	}
	return args
}

// probeRPC asks the node for its block number and chain id
func probeRPC(ctx context.Context, rpcURL string) (uint64, uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, 0, err
	}
	defer client.Close()

	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("eth_blockNumber: %w", err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("eth_chainId: %w", err)
	}
	return blockNumber, chainID.Uint64(), nil
}

// processAlive sends signal 0 to check whether the process exists
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %s", string(data))
	}
	return pid, nil
}

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}

// Ensure the manager implements the interface
var _ usecase.DevNodeManager = (*Manager)(nil)
