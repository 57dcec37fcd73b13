package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunIDIsCanonicalULID(t *testing.T) {
	id, err := NewRunID()
	require.NoError(t, err)
	assert.Len(t, id, 26)
}

func TestRunIDsAreStrictlyIncreasing(t *testing.T) {
	prev := MustNewRunID()
	for i := 0; i < 100; i++ {
		next := MustNewRunID()
		assert.Less(t, prev, next)
		prev = next
	}
}
