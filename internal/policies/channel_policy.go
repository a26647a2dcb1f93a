package policies

import (
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// DefaultChannelAlias is the base URL that bare channel names resolve to.
const DefaultChannelAlias = "https://conda.anaconda.org"

const noarchSubdir = "noarch"

// ChannelPolicy turns user-facing channel names into the subdir URLs the
// aggregator loads.
type ChannelPolicy struct {
	Alias     string
	Platform  string
	Whitelist []string
}

func NewChannelPolicy(alias string, platform string, whitelist []string) ChannelPolicy {
	alias = strings.TrimRight(strings.TrimSpace(alias), "/")
	if alias == "" {
		alias = DefaultChannelAlias
	}
	platform = strings.TrimSpace(platform)
	if platform == "" {
		platform = DefaultPlatform()
	}
	return ChannelPolicy{
		Alias:     alias,
		Platform:  platform,
		Whitelist: whitelist,
	}
}

// ChannelURLs expands channels, followed by defaults when prepend is set,
// into platform and noarch subdir URLs. Duplicates keep their first position.
func (p ChannelPolicy) ChannelURLs(channels []string, defaults []string, prepend bool) ([]types.ChannelURL, error) {
	requested := append([]string{}, channels...)
	if prepend {
		requested = append(requested, defaults...)
	}
	var expanded []string
	for _, channel := range requested {
		channel = strings.TrimSpace(channel)
		if channel == "" {
			continue
		}
		base := p.channelBase(channel)
		if err := p.checkWhitelist(channel, base); err != nil {
			return nil, err
		}
		if shared.IsKnownSubdir(path.Base(base)) {
			expanded = append(expanded, base)
			continue
		}
		expanded = append(expanded, base+"/"+p.Platform, base+"/"+noarchSubdir)
	}
	expanded = shared.UniqueStrings(expanded)
	if len(expanded) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no channels configured; pass --channel or set channels in the config file")
	}
	urls := make([]types.ChannelURL, 0, len(expanded))
	for _, value := range expanded {
		urls = append(urls, types.ChannelURL(value))
	}
	return urls, nil
}

func (p ChannelPolicy) channelBase(channel string) string {
	channel = strings.TrimRight(channel, "/")
	switch {
	case strings.Contains(channel, "://"):
		return channel
	case filepath.IsAbs(channel):
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(channel)}).String()
	default:
		return p.Alias + "/" + strings.TrimLeft(channel, "/")
	}
}

// checkWhitelist accepts a channel when its name, its expanded URL, or
// the credential-free form of that URL is listed.
func (p ChannelPolicy) checkWhitelist(channel string, base string) error {
	if len(p.Whitelist) == 0 {
		return nil
	}
	clean := shared.RedactURL(base)
	for _, allowed := range p.Whitelist {
		allowed = strings.TrimRight(strings.TrimSpace(allowed), "/")
		if allowed == "" {
			continue
		}
		if allowed == channel || allowed == base || allowed == clean {
			return nil
		}
		if !strings.Contains(allowed, "://") && p.Alias+"/"+allowed == clean {
			return nil
		}
	}
	return shared.NewChannelNotAllowedError(clean)
}

// DefaultPlatform maps the running GOOS/GOARCH to a channel subdir.
func DefaultPlatform() string {
	return PlatformFor(runtime.GOOS, runtime.GOARCH)
}

func PlatformFor(goos string, goarch string) string {
	osName := goos
	switch goos {
	case "darwin":
		osName = "osx"
	case "windows":
		osName = "win"
	}
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "64"
	case "386":
		arch = "32"
	case "arm64":
		if osName == "linux" {
			arch = "aarch64"
		}
	case "arm":
		arch = "armv7l"
	}
	return osName + "-" + arch
}
