package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/types"
)

// Config is the explicit per-invocation configuration. It is built once by
// the CLI and passed by value.
type Config struct {
	Prefix           string
	Channels         []string
	DefaultChannels  []string
	OverrideChannels bool
	ChannelPriority  types.ChannelPriority
	ChannelAlias     string
	Platform         string
	Whitelist        []string
	ChannelWorkers   int
	ChannelTimeout   time.Duration
	CacheDir         string
	CacheTTL         time.Duration
	HTTPTimeout      time.Duration
	HTTPRetries      int
	SolverCommand    []string
	ExecutorCommand  []string
	PlanOutput       string
	DryRun           bool
	MetricsFile      string
}

// NormalizeChannelPriority defaults an empty priority to flexible and
// rejects unknown values.
func NormalizeChannelPriority(value types.ChannelPriority) (types.ChannelPriority, error) {
	normalized := types.ChannelPriority(strings.ToLower(strings.TrimSpace(string(value))))
	switch normalized {
	case "":
		return types.ChannelPriorityFlexible, nil
	case types.ChannelPriorityStrict, types.ChannelPriorityFlexible, types.ChannelPriorityDisabled:
		return normalized, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported channel priority %q (use strict, flexible or disabled)", value))
	}
}

func requirePrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("target prefix is required")
	}
	return nil
}
