package adapters

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// SpecFileAdapter reads package specs from text files, YAML environment
// files, and TOML manifests. The format follows the file extension.
type SpecFileAdapter struct{}

func NewSpecFileAdapter() SpecFileAdapter {
	return SpecFileAdapter{}
}

func (a SpecFileAdapter) ReadSpecFile(path string) (types.SpecFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.SpecFile{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("spec file not found: %s", path)).
				WithCause(err)
		}
		return types.SpecFile{}, shared.NewInvalidSpecFileError(path, err)
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return types.SpecFile{}, shared.NewInvalidSpecFileError(path, errors.New("content is not UTF-8 text"))
	}
	file := types.SpecFile{Path: path, Format: SpecFileFormat(path)}
	switch file.Format {
	case types.SpecFileFormatYAML:
		file.Specs, file.Channels, err = parseEnvironmentFile(data)
	case types.SpecFileFormatTOML:
		file.Specs, file.Channels, err = parseManifestFile(data)
	default:
		file.Specs = shared.SplitSpecLines(strings.TrimPrefix(string(data), "\ufeff"))
	}
	if err != nil {
		return types.SpecFile{}, shared.NewInvalidSpecFileError(path, err)
	}
	return file, nil
}

// SpecFileFormat picks the decoder for path from its extension.
func SpecFileFormat(path string) types.SpecFileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return types.SpecFileFormatYAML
	case ".toml":
		return types.SpecFileFormatTOML
	default:
		return types.SpecFileFormatText
	}
}

// parseEnvironmentFile keeps string dependencies. Nested sections such as
// a pip list are mappings and are skipped.
func parseEnvironmentFile(data []byte) ([]string, []string, error) {
	var env types.EnvironmentFile
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, nil, err
	}
	var specs []string
	for _, dep := range env.Dependencies {
		value, ok := dep.(string)
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			specs = append(specs, value)
		}
	}
	return specs, env.Channels, nil
}

func parseManifestFile(data []byte) ([]string, []string, error) {
	var manifest types.ManifestFile
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(manifest.Dependencies))
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	specs := make([]string, 0, len(names))
	for _, name := range names {
		version := strings.TrimSpace(manifest.Dependencies[name])
		switch {
		case version == "" || version == "*":
			specs = append(specs, name)
		case version[0] >= '0' && version[0] <= '9':
			specs = append(specs, name+"="+version)
		default:
			specs = append(specs, name+version)
		}
	}
	return specs, manifest.Channels, nil
}

var _ ports.SpecFileReaderPort = SpecFileAdapter{}
