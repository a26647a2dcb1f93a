package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

const condaMetaDir = "conda-meta"

// PrefixDataAdapter enumerates the records installed in a prefix from its
// conda-meta directory.
type PrefixDataAdapter struct{}

func NewPrefixDataAdapter() PrefixDataAdapter {
	return PrefixDataAdapter{}
}

func (a PrefixDataAdapter) InstalledRecords(ctx context.Context, prefix string) ([]types.PackageRecord, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("prefix is empty")
	}
	dir := filepath.Join(prefix, condaMetaDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Ctx(ctx).Debug().Str("prefix", prefix).Msg("prefix has no conda-meta, treating as empty")
			return []types.PackageRecord{}, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read conda-meta").
			WithCause(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	records := make([]types.PackageRecord, 0, len(names))
	for _, name := range names {
		record, err := readPrefixRecord(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func readPrefixRecord(path string) (types.PackageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PackageRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read %s", path)).
			WithCause(err)
	}
	var record types.PackageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return types.PackageRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to decode installed record %s", path)).
			WithCause(err)
	}
	if record.Filename == "" {
		record.Filename = recordFilename(record)
	}
	if record.Depends == nil {
		record.Depends = []string{}
	}
	return record, nil
}

func recordFilename(record types.PackageRecord) string {
	if record.URL != "" {
		if base := path.Base(record.URL); base != "." && base != "/" {
			return base
		}
	}
	return fmt.Sprintf("%s-%s-%s.tar.bz2", record.Name, record.Version, record.Build)
}

var _ ports.InstalledEnumeratorPort = PrefixDataAdapter{}
