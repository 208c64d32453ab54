package concurrency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSlots(t *testing.T) {
	_, err := NewManager(0)
	assert.Error(t, err)

	m, err := NewManager(2)
	require.NoError(t, err)

	assert.True(t, m.TryAcquire())
	assert.True(t, m.TryAcquire())
	assert.False(t, m.TryAcquire())
	assert.Equal(t, int32(0), m.Available())

	require.NoError(t, m.Release())
	assert.Equal(t, int32(1), m.Available())

	assert.True(t, m.TryAcquire())

	metrics := m.GetMetrics()
	assert.Equal(t, int64(2), metrics["current"])
	assert.Equal(t, int64(3), metrics["total_executions"])
	assert.Equal(t, int64(1), metrics["rejected_count"])
}

func TestManagerOverRelease(t *testing.T) {
	m, err := NewManager(1)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Release(), ErrOverRelease)
}
