package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

// MetricsTextfileAdapter collects run metrics in a private registry and
// writes them in the Prometheus textfile format on Flush. An empty Path
// makes Flush a no-op.
type MetricsTextfileAdapter struct {
	Path            string
	registry        *prometheus.Registry
	channelDuration *prometheus.HistogramVec
	channelPackages *prometheus.GaugeVec
	planRecords     *prometheus.GaugeVec
}

func NewMetricsTextfileAdapter(path string) *MetricsTextfileAdapter {
	adapter := &MetricsTextfileAdapter{
		Path:     strings.TrimSpace(path),
		registry: prometheus.NewRegistry(),
		channelDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mamba_plan",
				Subsystem: "channel",
				Name:      "load_seconds",
				Help:      "Channel index load duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"channel"},
		),
		channelPackages: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mamba_plan",
				Subsystem: "channel",
				Name:      "packages",
				Help:      "Packages advertised by a channel index.",
			},
			[]string{"channel"},
		),
		planRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mamba_plan",
				Subsystem: "plan",
				Name:      "records",
				Help:      "Package records in the last transaction plan.",
			},
			[]string{"action"},
		),
	}
	adapter.registry.MustRegister(adapter.channelDuration, adapter.channelPackages, adapter.planRecords)
	return adapter
}

func (a *MetricsTextfileAdapter) ObserveChannelLoad(channel string, elapsed time.Duration, packages int) {
	a.channelDuration.WithLabelValues(channel).Observe(elapsed.Seconds())
	a.channelPackages.WithLabelValues(channel).Set(float64(packages))
}

func (a *MetricsTextfileAdapter) ObservePlan(plan types.TransactionPlan) {
	a.planRecords.WithLabelValues("link").Set(float64(len(plan.Link)))
	a.planRecords.WithLabelValues("unlink").Set(float64(len(plan.Unlink)))
	a.planRecords.WithLabelValues("warning").Set(float64(len(plan.Warnings)))
}

func (a *MetricsTextfileAdapter) Flush() error {
	if a.Path == "" {
		return nil
	}
	if err := ensureParentDir(a.Path); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(a.Path, a.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}

func (a *MetricsTextfileAdapter) Registry() *prometheus.Registry {
	return a.registry
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory").
			WithCause(err)
	}
	return nil
}

var _ ports.MetricsPort = (*MetricsTextfileAdapter)(nil)
