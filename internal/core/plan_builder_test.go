package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

func TestPlanBuilderUpgradeScenario(t *testing.T) {
	installed := []types.PackageRecord{installedNumpy()}
	indices := []types.ChannelIndex{mainIndex()}
	result := types.SolverResult{
		Unlink: []types.UnlinkItem{{Channel: "https://conda.example.com/main/linux-64", Filename: "numpy-1.20.0-py39h_0.tar.bz2"}},
		Link: []types.LinkItem{{
			Channel:  "https://conda.example.com/main/linux-64",
			Filename: "numpy-1.21.0-py39h_0.tar.bz2",
			Metadata: `{"name":"numpy","version":"1.21.0","build":"py39h_0","depends":["python >=3.9,<3.10"]}`,
		}},
	}

	plan, err := NewPlanBuilder().Build(context.Background(), result, indices, installed, "/opt/env", []string{"numpy=1.21"})
	require.NoError(t, err)

	assert.Equal(t, "/opt/env", plan.Prefix)
	require.Len(t, plan.Unlink, 1)
	assert.Equal(t, "numpy-1.20.0-py39h_0.tar.bz2", plan.Unlink[0].Filename)
	require.Len(t, plan.Link, 1)
	assert.Equal(t, "1.21.0", plan.Link[0].Version)
	assert.Equal(t, "https://user:pw@conda.example.com/main/linux-64/numpy-1.21.0-py39h_0.tar.bz2", plan.Link[0].URL)
	assert.Equal(t, []string{"numpy=1.21"}, plan.UpdateSpecs)
	assert.Empty(t, plan.RemoveSpecs)
	assert.NotNil(t, plan.RemoveSpecs)
	assert.Empty(t, plan.Warnings)
}

func TestPlanBuilderSkipsMissingUnlink(t *testing.T) {
	result := types.SolverResult{
		Unlink: []types.UnlinkItem{
			{Channel: "c", Filename: "ghost-1.0-0.tar.bz2"},
			{Channel: "c", Filename: "numpy-1.20.0-py39h_0.tar.bz2"},
		},
	}

	plan, err := NewPlanBuilder().Build(context.Background(), result, nil, []types.PackageRecord{installedNumpy()}, "/opt/env", nil)
	require.NoError(t, err)
	require.Len(t, plan.Unlink, 1)
	assert.Equal(t, "numpy-1.20.0-py39h_0.tar.bz2", plan.Unlink[0].Filename)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "ghost-1.0-0.tar.bz2")
}

func TestPlanBuilderUnknownChannel(t *testing.T) {
	result := types.SolverResult{
		Link: []types.LinkItem{{Channel: "https://elsewhere.example.com/x/linux-64", Filename: "a-1-0.tar.bz2", Metadata: "{}"}},
	}

	plan, err := NewPlanBuilder().Build(context.Background(), result, []types.ChannelIndex{mainIndex()}, nil, "/opt/env", nil)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindUnknownChannel))
	assert.True(t, plan.Empty())
}

func TestPlanBuilderEmptyResult(t *testing.T) {
	plan, err := NewPlanBuilder().Build(context.Background(), types.SolverResult{}, nil, nil, "/opt/env", []string{"numpy"})
	require.NoError(t, err)
	assert.True(t, plan.Empty())
	assert.NotNil(t, plan.Link)
	assert.NotNil(t, plan.Unlink)
}

func TestPlanBuilderDoesNotAliasInputs(t *testing.T) {
	installed := []types.PackageRecord{installedNumpy()}
	specs := []string{"numpy"}
	result := types.SolverResult{
		Unlink: []types.UnlinkItem{{Channel: "c", Filename: "numpy-1.20.0-py39h_0.tar.bz2"}},
	}

	plan, err := NewPlanBuilder().Build(context.Background(), result, nil, installed, "/opt/env", specs)
	require.NoError(t, err)
	plan.Unlink[0].Depends[0] = "mutated"
	plan.UpdateSpecs[0] = "mutated"
	assert.Equal(t, "python >=3.9,<3.10", installed[0].Depends[0])
	assert.Equal(t, "numpy", specs[0])
}
