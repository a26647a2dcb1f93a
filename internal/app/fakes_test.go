package app

import (
	"context"
	"sync"
	"time"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

type fakeLoader struct {
	mu      sync.Mutex
	indices map[types.ChannelURL]types.ChannelIndex
	calls   []types.ChannelURL
	err     error
}

func (f *fakeLoader) LoadChannel(_ context.Context, url types.ChannelURL) (types.ChannelIndex, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if f.err != nil {
		return types.ChannelIndex{}, f.err
	}
	if index, ok := f.indices[url]; ok {
		return index, nil
	}
	return types.ChannelIndex{Channel: string(url), BaseURL: string(url), CachePath: "/cache/other.json"}, nil
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeInstalled struct {
	records []types.PackageRecord
}

func (f fakeInstalled) InstalledRecords(context.Context, string) ([]types.PackageRecord, error) {
	return append([]types.PackageRecord(nil), f.records...), nil
}

type fakeSnapshotWriter struct {
	written  []types.InstalledSnapshot
	path     string
	cleaned  int
	writeErr error
}

func (f *fakeSnapshotWriter) WriteSnapshot(snapshot types.InstalledSnapshot) (string, func() error, error) {
	if f.writeErr != nil {
		return "", nil, f.writeErr
	}
	f.written = append(f.written, snapshot)
	return f.path, func() error {
		f.cleaned++
		return nil
	}, nil
}

type fakeSolver struct {
	result   types.SolverResult
	err      error
	requests []types.SolverRequest
}

func (f *fakeSolver) Solve(_ context.Context, request types.SolverRequest) (types.SolverResult, error) {
	f.requests = append(f.requests, request)
	return f.result, f.err
}

type fakeExecutor struct {
	plans []types.TransactionPlan
	err   error
}

func (f *fakeExecutor) Execute(_ context.Context, plan types.TransactionPlan) error {
	f.plans = append(f.plans, plan)
	return f.err
}

type fakeSpecReader struct {
	files map[string]types.SpecFile
	err   error
}

func (f fakeSpecReader) ReadSpecFile(path string) (types.SpecFile, error) {
	if f.err != nil {
		return types.SpecFile{}, f.err
	}
	return f.files[path], nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	loads   int
	plans   int
	flushed int
}

func (m *recordingMetrics) ObserveChannelLoad(string, time.Duration, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
}

func (m *recordingMetrics) ObservePlan(types.TransactionPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans++
}

func (m *recordingMetrics) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushed++
	return nil
}

func (m *recordingMetrics) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

type harness struct {
	loader   *fakeLoader
	snapshot *fakeSnapshotWriter
	solver   *fakeSolver
	executor *fakeExecutor
	metrics  *recordingMetrics
	service  Service
}

func newHarness(installed []types.PackageRecord) *harness {
	h := &harness{
		loader:   &fakeLoader{indices: map[types.ChannelURL]types.ChannelIndex{}},
		snapshot: &fakeSnapshotWriter{path: "/tmp/mamba-plan-installed-test.json"},
		solver:   &fakeSolver{},
		executor: &fakeExecutor{},
		metrics:  &recordingMetrics{},
	}
	h.service = Service{
		SpecReader:     fakeSpecReader{},
		Installed:      fakeInstalled{records: installed},
		SnapshotWriter: h.snapshot,
		ChannelLoader:  func(Config) ports.ChannelLoaderPort { return h.loader },
		Solver:         func(Config) ports.SolverPort { return h.solver },
		Executor: func(Config) (ports.TransactionExecutorPort, error) {
			return h.executor, nil
		},
		Metrics: func(Config) ports.MetricsPort { return h.metrics },
	}
	return h
}
