package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerVerbosity(t *testing.T) {
	logger, err := NewLogger(VERBOSE, false)
	require.NoError(t, err)
	assert.True(t, logger.V(DEFAULT).Enabled())
	assert.True(t, logger.V(VERBOSE).Enabled())
	assert.False(t, logger.V(TRACE).Enabled())

	logger, err = NewLogger(TRACE, true)
	require.NoError(t, err)
	assert.True(t, logger.V(TRACE).Enabled())
}

func TestNewTestLoggerTracesEverything(t *testing.T) {
	logger := NewTestLogger()
	assert.True(t, logger.V(TRACE).Enabled())
	assert.False(t, logger.V(TRACE+1).Enabled())
}
