package v8coverage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Voskan/covmerge/pkg/cov"
)

func sample() cov.ProcessCov {
	return cov.ProcessCov{Result: []cov.ScriptCov{
		{
			ScriptID: "1",
			URL:      "file:///foo.js",
			Functions: []cov.FunctionCov{
				{
					FunctionName:    "main",
					Ranges:          []cov.RangeCov{{StartOffset: 0, EndOffset: 10, Count: 1}},
					IsBlockCoverage: true,
				},
			},
		},
	}}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := sample()
	data, err := Marshal(in)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestMarshalUsesV8FieldNames(t *testing.T) {
	data, err := Marshal(sample())
	require.NoError(t, err)

	for _, field := range []string{`"result"`, `"scriptId"`, `"url"`, `"functions"`, `"functionName"`, `"ranges"`, `"isBlockCoverage"`, `"startOffset"`, `"endOffset"`, `"count"`} {
		assert.Contains(t, string(data), field)
	}
}

func TestWriteReadRoundTripUncompressed(t *testing.T) {
	in := sample()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in, false))

	got, err := Read(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestWriteReadRoundTripGzipped(t *testing.T) {
	in := sample()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in, true))

	got, err := Read(&buf, true)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestUnmarshalRejectsInvalidJSON(t *testing.T) {
	_, err := Unmarshal([]byte(`{not json`))
	assert.Error(t, err)
}
