package usecase

import (
	"context"
	"sort"

	"github.com/deri-protocol/deri-deploy/internal/domain"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network  string
	Contract string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*domain.DeploymentRecord
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	store DeploymentStore
	sink  ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store DeploymentStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		store: store,
		sink:  sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment records",
		Spinner: true,
	})

	records, err := uc.store.List(ctx, domain.DeploymentFilter{
		Network:  params.Network,
		Contract: params.Contract,
	})
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "completed"})
	if err != nil {
		return nil, err
	}

	// Newest first, then by network for a stable order
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].DeployedAt.Equal(records[j].DeployedAt) {
			return records[i].DeployedAt.After(records[j].DeployedAt)
		}
		return records[i].Network < records[j].Network
	})

	summary := DeploymentSummary{
		Total:     len(records),
		ByNetwork: make(map[string]int),
	}
	for _, r := range records {
		summary.ByNetwork[r.Network]++
	}

	return &DeploymentListResult{
		Deployments: records,
		Summary:     summary,
	}, nil
}
