package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsRecordRunAccumulates(t *testing.T) {
	s := &Stats{}
	s.RecordRun(3)
	s.RecordRun(5)

	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.Runs)
	assert.Equal(t, int64(8), snap.Functions)
	assert.Equal(t, int64(0), snap.Errors)
}

func TestStatsRecordError(t *testing.T) {
	s := &Stats{}
	s.RecordError()
	s.RecordError()

	assert.Equal(t, int64(2), s.Snapshot().Errors)
}
