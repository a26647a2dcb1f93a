package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

func TestBuildSolverRequest(t *testing.T) {
	indices := []types.ChannelIndex{
		{Channel: "https://conda.example.com/main/linux-64", CachePath: "/cache/a.json"},
		{Channel: "https://conda.example.com/main/noarch", CachePath: "/cache/b.json"},
	}
	got := BuildSolverRequest(indices, "/tmp/installed.json", []types.NormalizedSpec{"numpy =1.21"}, types.ChannelPriorityStrict)

	want := types.SolverRequest{
		Channels: []types.ChannelDescriptor{
			{Channel: "https://conda.example.com/main/linux-64", IndexPath: "/cache/a.json"},
			{Channel: "https://conda.example.com/main/noarch", IndexPath: "/cache/b.json"},
		},
		InstalledPath:  "/tmp/installed.json",
		Specs:          []types.NormalizedSpec{"numpy =1.21"},
		StrictPriority: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected request (-want +got):\n%s", diff)
	}

	flexible := BuildSolverRequest(indices, "", nil, types.ChannelPriorityFlexible)
	assert.False(t, flexible.StrictPriority)
}

func TestSolveWrapsFailure(t *testing.T) {
	solver := &fakeSolver{err: errors.New("nothing provides requested numpy 99")}

	_, err := Solve(context.Background(), solver, types.SolverRequest{})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindResolution))
	assert.Contains(t, err.Error(), "nothing provides requested numpy 99")
	assert.Equal(t, 1, solver.calls)
}

func TestSolveReturnsResult(t *testing.T) {
	solver := &fakeSolver{result: types.SolverResult{
		Link: []types.LinkItem{{Channel: "c", Filename: "a-1-0.tar.bz2", Metadata: "{}"}},
	}}
	request := types.SolverRequest{InstalledPath: "/tmp/x.json"}

	result, err := Solve(context.Background(), solver, request)
	require.NoError(t, err)
	assert.Len(t, result.Link, 1)
	assert.Equal(t, "/tmp/x.json", solver.request.InstalledPath)
}

func TestSolveWithoutSolver(t *testing.T) {
	_, err := Solve(context.Background(), nil, types.SolverRequest{})
	require.Error(t, err)
}
