package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestForRunTagsEveryLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))

	ForRun("01HZXW7M2E").Infow("merge complete", "scripts", 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "01HZXW7M2E", entries[0].ContextMap()["run_id"])
}

func TestSetNilInstallsNop(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Logger())
	assert.True(t, Initialised())
}
