package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

const snapshotFilePattern = "mamba-plan-installed-*.json"

// SnapshotFileAdapter persists installed snapshots as temporary JSON files.
type SnapshotFileAdapter struct {
	Dir string
}

func NewSnapshotFileAdapter(dir string) SnapshotFileAdapter {
	return SnapshotFileAdapter{Dir: dir}
}

// WriteSnapshot returns the file path and a cleanup func that removes it.
// The cleanup is safe to call more than once.
func (a SnapshotFileAdapter) WriteSnapshot(snapshot types.InstalledSnapshot) (string, func() error, error) {
	if snapshot.Packages == nil {
		snapshot.Packages = map[string]types.InstalledSummary{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode installed snapshot").
			WithCause(err)
	}
	file, err := os.CreateTemp(a.Dir, snapshotFilePattern)
	if err != nil {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create installed snapshot file").
			WithCause(err)
	}
	path := file.Name()
	cleanup := func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		cleanup()
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write installed snapshot file").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close installed snapshot file").
			WithCause(err)
	}
	return path, cleanup, nil
}

var _ ports.SnapshotWriterPort = SnapshotFileAdapter{}
