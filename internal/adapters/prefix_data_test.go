package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCondaMeta(t *testing.T, prefix string, name string, content string) {
	t.Helper()
	dir := filepath.Join(prefix, "conda-meta")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestPrefixDataAdapterReadsCondaMeta(t *testing.T) {
	prefix := t.TempDir()
	writeCondaMeta(t, prefix, "numpy-1.20.0-py39h_0.json", `{"name":"numpy","version":"1.20.0","build":"py39h_0","build_number":0,"depends":["python"],"url":"https://conda.example.com/main/linux-64/numpy-1.20.0-py39h_0.tar.bz2","channel":"https://conda.example.com/main/linux-64","subdir":"linux-64","files":["lib/x.so"]}`)
	writeCondaMeta(t, prefix, "python-3.9.7-h_0.json", `{"name":"python","version":"3.9.7","build":"h_0","fn":"python-3.9.7-h_0.tar.bz2"}`)
	writeCondaMeta(t, prefix, "zlib-1.2.11-0.json", `{"name":"zlib","version":"1.2.11","build":"0"}`)
	writeCondaMeta(t, prefix, "history", "not json")

	records, err := NewPrefixDataAdapter().InstalledRecords(context.Background(), prefix)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "numpy-1.20.0-py39h_0.tar.bz2", records[0].Filename)
	assert.Contains(t, records[0].Extra, "files")
	assert.Equal(t, "python-3.9.7-h_0.tar.bz2", records[1].Filename)
	assert.Equal(t, "zlib-1.2.11-0.tar.bz2", records[2].Filename)
	assert.NotNil(t, records[2].Depends)
}

func TestPrefixDataAdapterMissingPrefix(t *testing.T) {
	records, err := NewPrefixDataAdapter().InstalledRecords(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = NewPrefixDataAdapter().InstalledRecords(context.Background(), " ")
	require.Error(t, err)
}

func TestPrefixDataAdapterRejectsCorruptRecord(t *testing.T) {
	prefix := t.TempDir()
	writeCondaMeta(t, prefix, "broken-1.0-0.json", "{")

	_, err := NewPrefixDataAdapter().InstalledRecords(context.Background(), prefix)
	require.Error(t, err)
}
