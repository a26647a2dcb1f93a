package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"mamba-plan/internal/types"
)

type fakeChannelLoader struct {
	mu       sync.Mutex
	indices  map[types.ChannelURL]types.ChannelIndex
	failures map[types.ChannelURL]error
	delay    time.Duration
	active   atomic.Int32
	peak     atomic.Int32
	calls    []types.ChannelURL
}

func (f *fakeChannelLoader) LoadChannel(ctx context.Context, url types.ChannelURL) (types.ChannelIndex, error) {
	current := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		peak := f.peak.Load()
		if current <= peak || f.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return types.ChannelIndex{}, ctx.Err()
		}
	}
	if err, ok := f.failures[url]; ok {
		return types.ChannelIndex{}, err
	}
	if index, ok := f.indices[url]; ok {
		return index, nil
	}
	return types.ChannelIndex{Channel: string(url), BaseURL: string(url), CachePath: "/cache/" + string(url)}, nil
}

type fakeEnumerator struct {
	records []types.PackageRecord
	err     error
}

func (f fakeEnumerator) InstalledRecords(ctx context.Context, prefix string) ([]types.PackageRecord, error) {
	return f.records, f.err
}

type fakeSolver struct {
	result  types.SolverResult
	err     error
	request types.SolverRequest
	calls   int
}

func (f *fakeSolver) Solve(ctx context.Context, request types.SolverRequest) (types.SolverResult, error) {
	f.calls++
	f.request = request
	return f.result, f.err
}

type fakeMetrics struct {
	mu    sync.Mutex
	loads map[string]int
}

func (f *fakeMetrics) ObserveChannelLoad(channel string, elapsed time.Duration, packages int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loads == nil {
		f.loads = map[string]int{}
	}
	f.loads[channel] = packages
}

func (f *fakeMetrics) ObservePlan(plan types.TransactionPlan) {}

func (f *fakeMetrics) Flush() error { return nil }

var errBoom = errors.New("boom")
