package wire

import (
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
					IsBlockCoverage: true,
					Ranges: []cov.RangeCov{
						{StartOffset: 0, EndOffset: 10, Count: 1},
						{StartOffset: 2, EndOffset: 4, Count: 0},
					},
				},
			},
		},
	}}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := sample()
	data := Marshal(in)
	require.NotEmpty(t, data)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestMarshalEmptyProcess(t *testing.T) {
	data := Marshal(cov.ProcessCov{})
	assert.Empty(t, data)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, cov.ProcessCov{}, got)
}

func TestUnmarshalRejectsTruncatedInput(t *testing.T) {
	data := Marshal(sample())
	_, err := Unmarshal(data[:len(data)-1])
	assert.Error(t, err)
}
