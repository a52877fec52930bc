package usecase

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/deri-protocol/deri-deploy/internal/domain"
)

// DefaultDevNetwork is the profile whose fork_url the dev node forks from
const DefaultDevNetwork = "develop"

// ManageDevNode handles the local anvil fork of the develop network
type ManageDevNode struct {
	profiles    ProfileSource
	credentials CredentialSource
	manager     DevNodeManager
	progress    ProgressSink
}

// NewManageDevNode creates a new dev node management use case
func NewManageDevNode(profiles ProfileSource, credentials CredentialSource, manager DevNodeManager, progress ProgressSink) *ManageDevNode {
	return &ManageDevNode{
		profiles:    profiles,
		credentials: credentials,
		manager:     manager,
		progress:    progress,
	}
}

// ManageDevNodeParams contains parameters for dev node operations
type ManageDevNodeParams struct {
	Operation string // start, stop, restart, status, logs
	Network   string
	Port      string
}

// ManageDevNodeResult contains the result of dev node operations
type ManageDevNodeResult struct {
	Operation string
	Instance  *domain.DevNodeInstance
	Status    *domain.DevNodeStatus
	Message   string
}

// Execute performs the dev node operation
func (m *ManageDevNode) Execute(ctx context.Context, params ManageDevNodeParams) (*ManageDevNodeResult, error) {
	instance, err := m.instance(params)
	if err != nil {
		return nil, err
	}

	switch params.Operation {
	case "start":
		return m.start(ctx, instance)
	case "stop":
		return m.stop(ctx, instance)
	case "restart":
		if _, err := m.stop(ctx, instance); err != nil {
			return nil, err
		}
		result, err := m.start(ctx, instance)
		if err != nil {
			return nil, err
		}
		result.Operation = "restart"
		return result, nil
	case "status", "logs":
		status, err := m.manager.GetStatus(ctx, instance)
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return &ManageDevNodeResult{Operation: params.Operation, Instance: instance, Status: status}, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

// StreamLogs copies the dev node log to w until ctx is cancelled.
func (m *ManageDevNode) StreamLogs(ctx context.Context, params ManageDevNodeParams, w io.Writer) error {
	instance, err := m.instance(params)
	if err != nil {
		return err
	}
	return m.manager.StreamLogs(ctx, instance, w)
}

// instance derives the node settings from the network profile. The port
// comes from the profile's rpc_url unless overridden.
func (m *ManageDevNode) instance(params ManageDevNodeParams) (*domain.DevNodeInstance, error) {
	network := params.Network
	if network == "" {
		network = DefaultDevNetwork
	}
	profile, err := m.profiles.Lookup(network)
	if err != nil {
		return nil, withSuggestion(err)
	}

	port := params.Port
	if port == "" {
		port = "8545"
		if u, err := url.Parse(profile.RPCURL); err == nil && u.Port() != "" {
			port = u.Port()
		}
	}

	return &domain.DevNodeInstance{
		Name:    profile.Name,
		Port:    port,
		ChainID: profile.ChainID,
		ForkURL: profile.ForkURL,
	}, nil
}

func (m *ManageDevNode) start(ctx context.Context, instance *domain.DevNodeInstance) (*ManageDevNodeResult, error) {
	if instance.ForkURL != "" {
		forkURL, err := m.credentials.ExpandURL(instance.ForkURL)
		if err != nil {
			return nil, err
		}
		instance.ForkURL = forkURL
	}

	m.progress.Info(fmt.Sprintf("Starting dev node '%s' on port %s...", instance.Name, instance.Port))

	status, err := m.manager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("dev node '%s' is already running (PID %d)", instance.Name, status.PID)
	}

	if err := m.manager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start dev node: %w", err)
	}

	status, err = m.manager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageDevNodeResult{
		Operation: "start",
		Instance:  instance,
		Status:    status,
		Message:   fmt.Sprintf("Dev node '%s' started with PID %d", instance.Name, status.PID),
	}, nil
}

func (m *ManageDevNode) stop(ctx context.Context, instance *domain.DevNodeInstance) (*ManageDevNodeResult, error) {
	status, err := m.manager.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return &ManageDevNodeResult{
			Operation: "stop",
			Instance:  instance,
			Message:   fmt.Sprintf("Dev node '%s' is not running", instance.Name),
		}, nil
	}

	m.progress.Info(fmt.Sprintf("Stopping dev node '%s'...", instance.Name))
	if err := m.manager.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop dev node: %w", err)
	}

	return &ManageDevNodeResult{
		Operation: "stop",
		Instance:  instance,
		Message:   fmt.Sprintf("Dev node '%s' stopped", instance.Name),
	}, nil
}
