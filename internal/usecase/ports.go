package usecase

import (
	"context"
	"crypto/ecdsa"
	"io"

	"github.com/deri-protocol/deri-deploy/internal/domain"
)

// ProfileSource is the immutable table of network profiles
type ProfileSource interface {
	Networks() []string
	Lookup(name string) (*domain.NetworkProfile, error)
}

// ArtifactLoader provides the compiled interface of the deployed contract
type ArtifactLoader interface {
	Load(ctx context.Context, contract string) (*domain.ContractInterface, error)
}

// ConstructorEncoder ABI encodes constructor arguments
type ConstructorEncoder interface {
	Encode(args []domain.Argument) ([]byte, error)
}

// CredentialSource gives access to the secrets read from the environment
type CredentialSource interface {
	Signer() (*ecdsa.PrivateKey, error)
	ExpandURL(raw string) (string, error)
}

// ExecuteDeploymentRequest is everything the executor needs to send the
// contract creation transaction.
type ExecuteDeploymentRequest struct {
	Spec     *domain.DeploymentSpec
	Profile  *domain.NetworkProfile
	RPCURL   string
	Bytecode []byte
	Signer   *ecdsa.PrivateKey
	DryRun   bool
}

// DeploymentExecutor signs and broadcasts the contract creation transaction
type DeploymentExecutor interface {
	Execute(ctx context.Context, req ExecuteDeploymentRequest) (*domain.DeploymentReceipt, error)
}

// DeploymentStore persists deployment records
type DeploymentStore interface {
	Save(ctx context.Context, record *domain.DeploymentRecord) error
	List(ctx context.Context, filter domain.DeploymentFilter) ([]*domain.DeploymentRecord, error)
}

// DevNodeManager manages the local anvil fork
type DevNodeManager interface {
	Start(ctx context.Context, instance *domain.DevNodeInstance) error
	Stop(ctx context.Context, instance *domain.DevNodeInstance) error
	GetStatus(ctx context.Context, instance *domain.DevNodeInstance) (*domain.DevNodeStatus, error)
	StreamLogs(ctx context.Context, instance *domain.DevNodeInstance, writer io.Writer) error
}

// NetworkSelector handles interactive selection of a network
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
