package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2021, 1, 12, 0, 0, 0, 0, time.UTC)

	t.Run("list all deployments", func(t *testing.T) {
		records := []*domain.DeploymentRecord{
			{Network: "develop", Contract: "DeriOneV1Main", Address: "0x1111111111111111111111111111111111111111", DeployedAt: base},
			{Network: "mainnet", Contract: "DeriOneV1Main", Address: "0x2222222222222222222222222222222222222222", DeployedAt: base.Add(time.Hour)},
			{Network: "develop", Contract: "DeriOneV1Main", Address: "0x3333333333333333333333333333333333333333", DeployedAt: base.Add(2 * time.Hour)},
		}

		store := &MockDeploymentStore{}
		store.On("List", ctx, domain.DeploymentFilter{}).Return(records, nil)
		sink := &MockProgressSink{}

		uc := usecase.NewListDeployments(store, sink)
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		require.Len(t, result.Deployments, 3)
		assert.Equal(t, "0x3333333333333333333333333333333333333333", result.Deployments[0].Address)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", result.Deployments[2].Address)
		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByNetwork["develop"])
		assert.Equal(t, 1, result.Summary.ByNetwork["mainnet"])

		require.NotEmpty(t, sink.events)
		assert.Equal(t, "loading", sink.events[0].Stage)
		store.AssertExpectations(t)
	})

	t.Run("filter is passed to the store", func(t *testing.T) {
		store := &MockDeploymentStore{}
		store.On("List", ctx, domain.DeploymentFilter{Network: "mainnet"}).Return([]*domain.DeploymentRecord{}, nil)

		uc := usecase.NewListDeployments(store, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{Network: "mainnet"})
		require.NoError(t, err)
		assert.Empty(t, result.Deployments)
		assert.Equal(t, 0, result.Summary.Total)
		store.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		store := &MockDeploymentStore{}
		store.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("corrupt"))

		uc := usecase.NewListDeployments(store, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		assert.EqualError(t, err, "corrupt")
	})
}
