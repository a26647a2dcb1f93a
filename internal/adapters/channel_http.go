package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

const repodataFile = "repodata.json"

const defaultCacheTTL = 10 * time.Minute

// ChannelHTTPAdapter loads channel indices. Remote channels are fetched
// over HTTP and kept in an on-disk cache whose files double as the index
// paths handed to the solver. file:// channels are read in place.
type ChannelHTTPAdapter struct {
	CacheDir string
	CacheTTL time.Duration
	fetcher  httpFetcher
	now      func() time.Time
}

func NewChannelHTTPAdapter(cacheDir string, cacheTTL time.Duration, timeout time.Duration, retries int) ChannelHTTPAdapter {
	if strings.TrimSpace(cacheDir) == "" {
		cacheDir = DefaultCacheDir()
	}
	if cacheTTL < 0 {
		cacheTTL = 0
	}
	return ChannelHTTPAdapter{
		CacheDir: cacheDir,
		CacheTTL: cacheTTL,
		fetcher:  newHTTPFetcher(timeout, retries),
		now:      time.Now,
	}
}

// DefaultCacheDir is the per-user repodata cache location.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "mamba-plan", "repodata")
}

func (a ChannelHTTPAdapter) LoadChannel(ctx context.Context, raw types.ChannelURL) (types.ChannelIndex, error) {
	channel, err := shared.ParseChannelURL(raw)
	if err != nil {
		return types.ChannelIndex{}, err
	}
	parsed, err := url.Parse(channel.BaseURL)
	if err != nil {
		return types.ChannelIndex{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid channel url").
			WithCause(err)
	}
	if parsed.Scheme == "file" {
		return a.loadLocal(channel, filepath.Join(filepath.FromSlash(parsed.Path), repodataFile))
	}
	return a.loadRemote(ctx, channel)
}

func (a ChannelHTTPAdapter) loadLocal(channel types.Channel, path string) (types.ChannelIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return types.ChannelIndex{}, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to read %s", path)).
			WithCause(err)
	}
	return decodeChannelIndex(channel, path, data)
}

func (a ChannelHTTPAdapter) loadRemote(ctx context.Context, channel types.Channel) (types.ChannelIndex, error) {
	cachePath := a.cachePath(channel)
	cached, fresh := a.readCache(cachePath)
	if fresh {
		index, err := decodeChannelIndex(channel, cachePath, cached)
		if err == nil {
			log.Ctx(ctx).Debug().Str("channel", channel.Name).Str("cache", cachePath).Msg("using cached channel index")
			return index, nil
		}
		log.Ctx(ctx).Warn().Err(err).Str("cache", cachePath).Msg("discarding unreadable channel cache")
		cached = nil
	}

	body, err := a.fetcher.get(ctx, shared.JoinURL(channel.BaseURL, repodataFile))
	if err != nil {
		if cached != nil && ctx.Err() == nil {
			if index, decodeErr := decodeChannelIndex(channel, cachePath, cached); decodeErr == nil {
				log.Ctx(ctx).Warn().Err(err).Str("channel", channel.Name).Msg("channel unreachable, using stale cache")
				return index, nil
			}
		}
		return types.ChannelIndex{}, err
	}
	index, err := decodeChannelIndex(channel, cachePath, body)
	if err != nil {
		return types.ChannelIndex{}, err
	}
	if err := writeFileAtomic(cachePath, body); err != nil {
		return types.ChannelIndex{}, err
	}
	return index, nil
}

func (a ChannelHTTPAdapter) cachePath(channel types.Channel) string {
	return filepath.Join(a.CacheDir, fmt.Sprintf("%016x.json", xxhash.Sum64String(channel.Name)))
}

// readCache returns the cached body, if any, and whether it is within TTL.
func (a ChannelHTTPAdapter) readCache(path string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	fresh := a.CacheTTL > 0 && now().Sub(info.ModTime()) < a.CacheTTL
	return data, fresh
}

func decodeChannelIndex(channel types.Channel, path string, data []byte) (types.ChannelIndex, error) {
	var repodata types.RepoData
	if err := json.Unmarshal(data, &repodata); err != nil {
		return types.ChannelIndex{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to decode channel index %s", path)).
			WithCause(err)
	}
	subdir := channel.Subdir
	if subdir == "" {
		subdir = repodata.Info.Subdir
	}
	packages := make(map[string]types.PackageRecord, len(repodata.Packages)+len(repodata.PackagesCond))
	for _, group := range []map[string]types.PackageRecord{repodata.Packages, repodata.PackagesCond} {
		for filename, record := range group {
			record.Filename = filename
			record.Channel = channel.Name
			if record.Subdir == "" {
				record.Subdir = subdir
			}
			packages[filename] = record
		}
	}
	return types.ChannelIndex{
		Channel:   channel.Name,
		BaseURL:   channel.BaseURL,
		Subdir:    subdir,
		CachePath: path,
		Packages:  packages,
	}, nil
}

// writeFileAtomic writes through a sibling temp file and a rename so readers
// never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temp file").
			WithCause(err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write temp file").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close temp file").
			WithCause(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return nil
}

var _ ports.ChannelLoaderPort = ChannelHTTPAdapter{}
