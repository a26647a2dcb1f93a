package shared

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/types"
)

var (
	tokenPrefix  = regexp.MustCompile(`^/t/[^/]+`)
	tokenSegment = regexp.MustCompile(`/t/[^/]+`)
	userinfo     = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*://)[^/@]*@`)
)

var knownSubdirs = map[string]struct{}{
	"noarch":            {},
	"linux-32":          {},
	"linux-64":          {},
	"linux-aarch64":     {},
	"linux-armv6l":      {},
	"linux-armv7l":      {},
	"linux-ppc64le":     {},
	"linux-s390x":       {},
	"osx-64":            {},
	"osx-arm64":         {},
	"win-32":            {},
	"win-64":            {},
	"win-arm64":         {},
	"emscripten-wasm32": {},
	"wasi-wasm32":       {},
	"zos-z":             {},
}

// IsKnownSubdir reports whether name is a platform subdir of a channel.
func IsKnownSubdir(name string) bool {
	_, ok := knownSubdirs[name]
	return ok
}

// ParseChannelURL splits a channel URL into its credential-free identity and
// its credentialed base URL.
func ParseChannelURL(raw types.ChannelURL) (types.Channel, error) {
	value := strings.TrimRight(strings.TrimSpace(string(raw)), "/")
	if value == "" {
		return types.Channel{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel url is empty")
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" {
		return types.Channel{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid channel url: %s", RedactURL(value))).
			WithCause(err)
	}
	clean := stripCredentials(*parsed)
	channel := types.Channel{
		Name:    clean.String(),
		BaseURL: value,
	}
	if base := path.Base(clean.Path); IsKnownSubdir(base) {
		channel.Subdir = base
	}
	return channel, nil
}

// RedactURL removes userinfo and "/t/<token>" segments so a URL can be
// logged or used as an identity.
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		raw = tokenSegment.ReplaceAllString(raw, "")
		return userinfo.ReplaceAllString(raw, "$1")
	}
	clean := stripCredentials(*parsed)
	return clean.String()
}

// JoinURL joins a base URL and a relative name with exactly one slash.
func JoinURL(base string, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}

func stripCredentials(u url.URL) url.URL {
	u.User = nil
	if tokenPrefix.MatchString(u.Path) {
		u.Path = tokenPrefix.ReplaceAllString(u.Path, "")
		u.RawPath = ""
	}
	return u
}
