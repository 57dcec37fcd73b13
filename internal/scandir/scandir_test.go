package scandir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Voskan/covmerge/pkg/cov"
	"github.com/Voskan/covmerge/pkg/v8coverage"
)

func writeSample(t *testing.T, dir, name, url string) {
	t.Helper()
	p := cov.ProcessCov{Result: []cov.ScriptCov{
		{ScriptID: "1", URL: url, Functions: []cov.FunctionCov{
			{FunctionName: "f", Ranges: []cov.RangeCov{{StartOffset: 0, EndOffset: 4, Count: 1}}, IsBlockCoverage: true},
		}},
	}}
	data, err := v8coverage.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestScanSortsAndFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "b.json", "a.js")
	writeSample(t, dir, "a.json", "a.js")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("nope"), 0o644))

	entries, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Path, "a.json")
	assert.Contains(t, entries[1].Path, "b.json")
	assert.False(t, entries[0].Gzipped)
}

func TestScanDetectsGzipByExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p.json.gz"), []byte{0x1f, 0x8b}, 0o644))

	entries, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Gzipped)
}

func TestLoadAllDecodesInFilenameOrder(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "2.json", "b.js")
	writeSample(t, dir, "1.json", "a.js")

	got, err := LoadAll(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.js", got[0].Result[0].URL)
	assert.Equal(t, "b.js", got[1].Result[0].URL)
}

func TestLoadAllWrapsDecodeErrorsWithPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, err := LoadAll(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}
