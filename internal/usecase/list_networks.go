package usecase

import (
	"context"
	"errors"

	"github.com/deri-protocol/deri-deploy/internal/domain"
)

// Network status values reported by ListNetworks
const (
	NetworkOK       = "ok"
	NetworkInvalid  = "invalid"
	NetworkConflict = "conflict"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	ChainID uint64
	Profile *domain.NetworkProfile // nil on conflict
	Status  string
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	profiles ProfileSource
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(profiles ProfileSource) *ListNetworks {
	return &ListNetworks{
		profiles: profiles,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.profiles.Networks()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{
			Name:   name,
			Status: NetworkOK,
		}

		profile, err := uc.profiles.Lookup(name)
		if err != nil {
			status.Error = err
			status.Status = NetworkInvalid
			if errors.Is(err, domain.ErrConfigurationConflict) {
				status.Status = NetworkConflict
			}
			networks = append(networks, status)
			continue
		}

		status.Profile = profile
		status.ChainID = profile.ChainID
		for _, p := range profile.Params {
			if err := domain.ValidateParameter(name, p); err != nil {
				status.Status = NetworkInvalid
				status.Error = err
				break
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
