package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// HydrateRecord builds a full package record from the raw JSON metadata a
// solver returned for filename, attributing it to index.
func HydrateRecord(ctx context.Context, index types.ChannelIndex, filename string, metadata string) (types.PackageRecord, error) {
	assert.NotEmpty(ctx, index.Channel, "channel index must be named")
	assert.NotEmpty(ctx, index.BaseURL, "channel index must carry its base url")
	var record types.PackageRecord
	if err := json.Unmarshal([]byte(metadata), &record); err != nil {
		return types.PackageRecord{}, shared.NewInvalidPackageMetadataError(filename, err)
	}
	record.Filename = filename
	record.Channel = index.Channel
	record.URL = shared.JoinURL(index.BaseURL, filename)
	if record.Subdir == "" {
		record.Subdir = index.Subdir
	}
	if record.Depends == nil {
		record.Depends = []string{}
	}
	if missing := missingRecordFields(record); len(missing) > 0 {
		return types.PackageRecord{}, shared.NewInvalidPackageMetadataError(
			filename,
			fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")),
		)
	}
	return record, nil
}

func missingRecordFields(record types.PackageRecord) []string {
	var missing []string
	if strings.TrimSpace(record.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(record.Version) == "" {
		missing = append(missing, "version")
	}
	if strings.TrimSpace(record.Build) == "" {
		missing = append(missing, "build")
	}
	if strings.TrimSpace(record.Filename) == "" {
		missing = append(missing, "fn")
	}
	return missing
}
