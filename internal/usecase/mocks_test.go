package usecase_test

import (
	"context"
	"crypto/ecdsa"
	"io"
	"testing"

	"github.com/deri-protocol/deri-deploy/internal/config"
	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockArtifactLoader is a mock implementation of ArtifactLoader
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Load(ctx context.Context, contract string) (*domain.ContractInterface, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractInterface), args.Error(1)
}

// MockCredentialSource is a mock implementation of CredentialSource
type MockCredentialSource struct {
	mock.Mock
}

func (m *MockCredentialSource) Signer() (*ecdsa.PrivateKey, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ecdsa.PrivateKey), args.Error(1)
}

func (m *MockCredentialSource) ExpandURL(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

// MockDeploymentExecutor is a mock implementation of DeploymentExecutor
type MockDeploymentExecutor struct {
	mock.Mock
}

func (m *MockDeploymentExecutor) Execute(ctx context.Context, req usecase.ExecuteDeploymentRequest) (*domain.DeploymentReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeploymentReceipt), args.Error(1)
}

// MockDeploymentStore is a mock implementation of DeploymentStore
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) Save(ctx context.Context, record *domain.DeploymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeploymentStore) List(ctx context.Context, filter domain.DeploymentFilter) ([]*domain.DeploymentRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DeploymentRecord), args.Error(1)
}

// MockDevNodeManager is a mock implementation of DevNodeManager
type MockDevNodeManager struct {
	mock.Mock
}

func (m *MockDevNodeManager) Start(ctx context.Context, instance *domain.DevNodeInstance) error {
	return m.Called(ctx, instance).Error(0)
}

func (m *MockDevNodeManager) Stop(ctx context.Context, instance *domain.DevNodeInstance) error {
	return m.Called(ctx, instance).Error(0)
}

func (m *MockDevNodeManager) GetStatus(ctx context.Context, instance *domain.DevNodeInstance) (*domain.DevNodeStatus, error) {
	args := m.Called(ctx, instance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DevNodeStatus), args.Error(1)
}

func (m *MockDevNodeManager) StreamLogs(ctx context.Context, instance *domain.DevNodeInstance, writer io.Writer) error {
	return m.Called(ctx, instance, writer).Error(0)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {}

// builtinProfiles returns the profile table shipped with the binary.
func builtinProfiles(t *testing.T) *config.ProfileTable {
	t.Helper()
	project, err := config.LoadProject(t.TempDir())
	require.NoError(t, err)
	return config.NewProfileTable(project.Files)
}

// profilesFromTOML builds a profile table from deploy files keyed by source name.
func profilesFromTOML(t *testing.T, files ...[2]string) *config.ProfileTable {
	t.Helper()
	var loaded []config.LoadedDeployFile
	for _, f := range files {
		file, err := config.DecodeDeployFile(f[0], []byte(f[1]))
		require.NoError(t, err)
		loaded = append(loaded, *file)
	}
	return config.NewProfileTable(loaded)
}
