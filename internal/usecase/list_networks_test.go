package usecase_test

import (
	"context"
	"testing"

	"github.com/deri-protocol/deri-deploy/internal/domain"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNetworks(t *testing.T) {
	ctx := context.Background()

	t.Run("built-in networks are valid", func(t *testing.T) {
		uc := usecase.NewListNetworks(builtinProfiles(t))

		result, err := uc.Run(ctx, usecase.ListNetworksParams{})
		require.NoError(t, err)
		require.Len(t, result.Networks, 2)

		for _, n := range result.Networks {
			assert.Equal(t, usecase.NetworkOK, n.Status, n.Name)
			assert.NoError(t, n.Error)
			assert.Equal(t, uint64(1), n.ChainID)
			require.NotNil(t, n.Profile)
		}
		assert.Equal(t, "develop", result.Networks[0].Name)
		assert.Equal(t, "mainnet", result.Networks[1].Name)
	})

	t.Run("reports invalid and conflicting networks", func(t *testing.T) {
		conflicting := `
[networks.kovan]
chain_id = 42
`
		profiles := profilesFromTOML(t,
			[2]string{"deploy.toml", mainnetWithEmptyPool + conflicting},
			[2]string{"deploy.d/kovan.toml", "[networks.kovan]\nchain_id = 69\n"},
		)
		uc := usecase.NewListNetworks(profiles)

		result, err := uc.Run(ctx, usecase.ListNetworksParams{})
		require.NoError(t, err)
		require.Len(t, result.Networks, 2)

		kovan := result.Networks[0]
		assert.Equal(t, "kovan", kovan.Name)
		assert.Equal(t, usecase.NetworkConflict, kovan.Status)
		assert.ErrorIs(t, kovan.Error, domain.ErrConfigurationConflict)
		assert.Nil(t, kovan.Profile)

		mainnet := result.Networks[1]
		assert.Equal(t, usecase.NetworkInvalid, mainnet.Status)
		assert.ErrorIs(t, mainnet.Error, domain.ErrInvalidParameter)
	})
}
