package usecase_test

import (
	"context"
	"testing"

	"github.com/nftmarket/nftm/internal/domain"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectSteps(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		want    []string
		wantErr bool
	}{
		{name: "default is all", tags: nil, want: []string{"01", "02", "99"}},
		{name: "all", tags: []string{"all"}, want: []string{"01", "02", "99"}},
		{name: "marketplace only", tags: []string{"nftmarketplace"}, want: []string{"01"}},
		{name: "nft and front end keep order", tags: []string{"frontend", "basicnft"}, want: []string{"02", "99"}},
		{name: "unknown tag", tags: []string{"mocks"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := usecase.SelectSteps(tt.tags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lo.Map(steps, func(s usecase.DeployStep, _ int) string { return s.ID }))
		})
	}
}

type runFixture struct {
	deploy    *deployFixture
	registry  *MockRegistryStore
	confirmer *MockConfirmer
}

func newRunFixture() *runFixture {
	return &runFixture{
		deploy:    newDeployFixture(),
		registry:  new(MockRegistryStore),
		confirmer: new(MockConfirmer),
	}
}

func (f *runFixture) useCase(cfg *config.RuntimeConfig) *usecase.RunDeployments {
	deploy := f.deploy.useCase(cfg)
	frontEnd := usecase.NewUpdateFrontEnd(cfg, f.registry, f.deploy.deployments, usecase.NopProgress{}, discardLogger())
	return usecase.NewRunDeployments(cfg, deploy, frontEnd, f.confirmer, usecase.NopProgress{}, discardLogger())
}

func TestRunDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("all steps on hardhat", func(t *testing.T) {
		f := newRunFixture()
		for _, name := range []string{domain.MarketplaceContract, domain.BasicNftContract} {
			f.deploy.artifacts.On("GetArtifact", mock.Anything, name).Return(&domain.Artifact{ContractName: name}, nil)
		}
		f.deploy.deployer.On("Deploy", mock.Anything, mock.Anything).Return(&usecase.DeployedContract{Address: marketplaceAddr, ChainID: 31337}, nil)
		f.deploy.deployments.On("SaveDeployment", mock.Anything, mock.Anything).Return(nil)

		result, err := f.useCase(frontEndConfig(false)).Run(ctx, usecase.RunDeploymentsParams{})

		require.NoError(t, err)
		require.Len(t, result.Steps, 3)
		assert.Equal(t, domain.MarketplaceContract, result.Steps[0].Deployment.Deployment.ContractName)
		assert.Equal(t, domain.BasicNftContract, result.Steps[1].Deployment.Deployment.ContractName)
		assert.True(t, result.Steps[2].FrontEnd.Skipped)
		f.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
		f.deploy.deployer.AssertNumberOfCalls(t, "Deploy", 2)
	})

	t.Run("failed step stops the run", func(t *testing.T) {
		f := newRunFixture()
		f.deploy.artifacts.On("GetArtifact", mock.Anything, domain.MarketplaceContract).Return(nil, domain.ContractNotFoundErr{Name: domain.MarketplaceContract})

		result, err := f.useCase(frontEndConfig(true)).Run(ctx, usecase.RunDeploymentsParams{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		assert.Empty(t, result.Steps)
		f.deploy.deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
		f.registry.AssertNotCalled(t, "Load", mock.Anything)
	})

	t.Run("live network asks for confirmation", func(t *testing.T) {
		f := newRunFixture()
		f.confirmer.On("Confirm", mock.Anything, "Deploy to sepolia (chain 11155111)").Return(false, nil)

		_, err := f.useCase(sepoliaConfig("")).Run(ctx, usecase.RunDeploymentsParams{Tags: []string{"basicnft"}})

		assert.ErrorIs(t, err, usecase.ErrDeploymentCancelled)
		f.deploy.deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})

	t.Run("non-interactive live network skips confirmation", func(t *testing.T) {
		f := newRunFixture()
		cfg := sepoliaConfig("")
		cfg.NonInteractive = true
		f.deploy.artifacts.On("GetArtifact", mock.Anything, domain.BasicNftContract).Return(&domain.Artifact{}, nil)
		f.deploy.deployer.On("Deploy", mock.Anything, mock.Anything).Return(&usecase.DeployedContract{}, nil)
		f.deploy.deployments.On("SaveDeployment", mock.Anything, mock.Anything).Return(nil)

		result, err := f.useCase(cfg).Run(ctx, usecase.RunDeploymentsParams{Tags: []string{"basicnft"}})

		require.NoError(t, err)
		assert.Len(t, result.Steps, 1)
		f.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("front end flag forces the update", func(t *testing.T) {
		f := newRunFixture()
		f.deploy.deployments.On("GetDeployment", mock.Anything, "hardhat", domain.MarketplaceContract).
			Return(&domain.Deployment{Address: marketplaceAddr}, nil)
		f.registry.On("Load", mock.Anything).Return(domain.NewAddressRegistry(), nil)
		f.registry.On("Save", mock.Anything, mock.Anything).Return(nil)

		result, err := f.useCase(frontEndConfig(false)).Run(ctx, usecase.RunDeploymentsParams{
			Tags:           []string{"frontend"},
			UpdateFrontEnd: true,
		})

		require.NoError(t, err)
		require.Len(t, result.Steps, 1)
		assert.False(t, result.Steps[0].FrontEnd.Skipped)
		f.registry.AssertCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
