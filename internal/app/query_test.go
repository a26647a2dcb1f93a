package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mamba-plan/internal/adapters"
	"mamba-plan/internal/types"
)

func TestIndexReportsChannels(t *testing.T) {
	h := newHarness(nil)
	h.loader.indices[mainLinux] = types.ChannelIndex{
		Channel:   mainLinux,
		Subdir:    "linux-64",
		CachePath: "/cache/main.json",
		Packages:  map[string]types.PackageRecord{"a-1-0.tar.bz2": {Name: "a"}},
	}

	result, err := h.service.Index(context.Background(), IndexRequest{Config: baseConfig()})
	require.NoError(t, err)
	require.Len(t, result.Channels, 2)
	assert.Equal(t, IndexedChannel{Channel: mainLinux, Subdir: "linux-64", Packages: 1, CachePath: "/cache/main.json"}, result.Channels[0])
	assert.Equal(t, 1, h.metrics.flushed)
}

func TestListSortsRecords(t *testing.T) {
	h := newHarness([]types.PackageRecord{{Name: "zlib"}, {Name: "numpy"}})

	result, err := h.service.List(context.Background(), ListRequest{Prefix: "/opt/env"})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "numpy", result.Records[0].Name)

	_, err = h.service.List(context.Background(), ListRequest{})
	require.Error(t, err)
}

func TestInspectSummarizesPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	plan := types.TransactionPlan{
		Prefix:      "/opt/env",
		Unlink:      []types.PackageRecord{installedNumpy()},
		Link:        []types.PackageRecord{{Name: "numpy", Version: "1.21.0", Build: "py39h_0", Filename: "numpy-1.21.0-py39h_0.tar.bz2"}},
		UpdateSpecs: []string{"numpy=1.21"},
		RemoveSpecs: []string{},
	}
	require.NoError(t, adapters.NewPlanFileAdapter(path).Execute(context.Background(), plan))

	svc := Service{PlanReader: adapters.NewPlanFileAdapter("")}
	result, err := svc.Inspect(InspectRequest{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "/opt/env", result.Plan.Prefix)
	require.Len(t, result.Summary.Entries, 1)
	assert.Equal(t, types.PlanActionUpdate, result.Summary.Entries[0].Action)

	_, err = svc.Inspect(InspectRequest{})
	require.Error(t, err)
}
