package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

// BuildInstalledSnapshot enumerates the records installed in prefix and
// transcribes them into a snapshot keyed by filename. The raw records are
// returned alongside for unlink matching.
func BuildInstalledSnapshot(ctx context.Context, enumerator ports.InstalledEnumeratorPort, prefix string) ([]types.PackageRecord, types.InstalledSnapshot, error) {
	if enumerator == nil {
		return nil, types.InstalledSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("installed snapshot requires an enumerator")
	}
	records, err := enumerator.InstalledRecords(ctx, prefix)
	if err != nil {
		return nil, types.InstalledSnapshot{}, err
	}
	snapshot := types.InstalledSnapshot{
		Packages: make(map[string]types.InstalledSummary, len(records)),
	}
	for _, record := range records {
		snapshot.Packages[record.Filename] = SummarizeInstalled(record)
	}
	log.Ctx(ctx).Debug().Str("prefix", prefix).Int("installed", len(records)).Msg("installed snapshot built")
	return records, snapshot, nil
}

// SummarizeInstalled dumps the dist fields of a record plus its dependency
// list and build string.
func SummarizeInstalled(record types.PackageRecord) types.InstalledSummary {
	depends := append([]string{}, record.Depends...)
	return types.InstalledSummary{
		BaseURL:     strings.TrimSuffix(record.Channel, "/"+record.Subdir),
		BuildNumber: record.BuildNumber,
		BuildString: record.Build,
		Channel:     record.Channel,
		DistName:    fmt.Sprintf("%s-%s-%s", record.Name, record.Version, record.Build),
		Name:        record.Name,
		Platform:    record.Subdir,
		Version:     record.Version,
		Depends:     depends,
		Build:       record.Build,
	}
}
