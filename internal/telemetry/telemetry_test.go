package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown, err := Init(context.Background(), false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpanReturnsUsableSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "mergeFunctions")
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()
}
