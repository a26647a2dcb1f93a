// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// ChannelPackage is one repodata.json entry, keyed by its filename.
type ChannelPackage struct {
	Filename string
	Name     string
	Version  string
	Build    string
	Depends  []string
}

// RepoData renders packages as a repodata.json document for subdir.
func RepoData(t *testing.T, subdir string, packages ...ChannelPackage) []byte {
	t.Helper()
	entries := make(map[string]map[string]any, len(packages))
	for _, pkg := range packages {
		depends := pkg.Depends
		if depends == nil {
			depends = []string{}
		}
		entries[pkg.Filename] = map[string]any{
			"name":         pkg.Name,
			"version":      pkg.Version,
			"build":        pkg.Build,
			"build_number": 0,
			"depends":      depends,
			"subdir":       subdir,
		}
	}
	data, err := json.Marshal(map[string]any{
		"info":     map[string]string{"subdir": subdir},
		"packages": entries,
	})
	require.NoError(t, err)
	return data
}

// WriteChannel lays out a local channel under root with a repodata.json per
// subdir and returns its file:// URL.
func WriteChannel(t *testing.T, root string, subdirs map[string][]ChannelPackage) string {
	t.Helper()
	for subdir, packages := range subdirs {
		dir := filepath.Join(root, subdir)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "repodata.json"), RepoData(t, subdir, packages...), 0644))
	}
	return "file://" + filepath.ToSlash(root)
}

// WriteScript writes a shell script that drains stdin and prints output,
// returning its path.
func WriteScript(t *testing.T, output string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	body := "#!/bin/sh\ncat >/dev/null\ncat <<'JSON'\n" + output + "\nJSON\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}
