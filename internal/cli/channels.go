package cli

import (
	"time"

	"github.com/spf13/cobra"

	"mamba-plan/internal/adapters"
	"mamba-plan/internal/app"
	"mamba-plan/internal/core"
	"mamba-plan/internal/policies"
)

// channelOptions are the flags shared by every command that loads channels.
type channelOptions struct {
	Channels         []string
	DefaultChannels  []string
	OverrideChannels bool
	ChannelAlias     string
	Platform         string
	Whitelist        []string
	ChannelWorkers   int
	ChannelTimeout   time.Duration
	CacheDir         string
	CacheTTL         time.Duration
	HTTPTimeout      time.Duration
	HTTPRetries      int
	MetricsFile      string
}

func addChannelFlags(cmd *cobra.Command, opts *channelOptions) {
	cmd.Flags().StringSliceVarP(&opts.Channels, "channel", "c", nil, "Channel name or URL (repeatable)")
	cmd.Flags().StringSliceVar(&opts.DefaultChannels, "default-channel", nil, "Channels appended after --channel unless --override-channels is set")
	cmd.Flags().BoolVar(&opts.OverrideChannels, "override-channels", false, "Use only the channels given with --channel")
	cmd.Flags().StringVar(&opts.ChannelAlias, "channel-alias", policies.DefaultChannelAlias, "Base URL for channel names")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Platform subdir (defaults to the running platform)")
	cmd.Flags().StringSliceVar(&opts.Whitelist, "channel-whitelist", nil, "Only allow these channels")
	cmd.Flags().IntVar(&opts.ChannelWorkers, "channel-workers", core.DefaultChannelWorkers, "Concurrent channel index loads")
	cmd.Flags().DurationVar(&opts.ChannelTimeout, "channel-timeout", 0, "Per-channel load timeout (0 disables)")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", "", "Channel index cache directory")
	cmd.Flags().DurationVar(&opts.CacheTTL, "cache-ttl", 10*time.Minute, "Reuse cached channel indices younger than this")
	cmd.Flags().DurationVar(&opts.HTTPTimeout, "http-timeout", 60*time.Second, "HTTP request timeout")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP attempts per channel")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
}

func (opts channelOptions) apply(cmd *cobra.Command, cfg *app.Config) {
	cfg.Channels = resolveStrings(cmd, opts.Channels, "channels", "channel")
	cfg.DefaultChannels = resolveStrings(cmd, opts.DefaultChannels, "default_channels", "default-channel")
	cfg.OverrideChannels = resolveBool(cmd, opts.OverrideChannels, "override_channels", "override-channels")
	cfg.ChannelAlias = resolveString(cmd, opts.ChannelAlias, "channel_alias", "channel-alias")
	cfg.Platform = resolveString(cmd, opts.Platform, "platform", "platform")
	cfg.Whitelist = resolveStrings(cmd, opts.Whitelist, "channel_whitelist", "channel-whitelist")
	cfg.ChannelWorkers = resolveInt(cmd, opts.ChannelWorkers, "channel_workers", "channel-workers")
	cfg.ChannelTimeout = resolveDuration(cmd, opts.ChannelTimeout, "channel_timeout", "channel-timeout")
	cfg.CacheDir = resolveString(cmd, opts.CacheDir, "cache_dir", "cache-dir")
	if cfg.CacheDir == "" {
		cfg.CacheDir = adapters.DefaultCacheDir()
	}
	cfg.CacheTTL = resolveDuration(cmd, opts.CacheTTL, "cache_ttl", "cache-ttl")
	cfg.HTTPTimeout = resolveDuration(cmd, opts.HTTPTimeout, "http_timeout", "http-timeout")
	cfg.HTTPRetries = resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries")
	cfg.MetricsFile = resolveString(cmd, opts.MetricsFile, "metrics_file", "metrics-file")
}
