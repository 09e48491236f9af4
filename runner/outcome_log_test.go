package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ko.txt")
	log := NewOutcomeLog(path)

	require.NoError(t, log.Append("example.com"))
	require.NoError(t, log.Append("example.org"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com\nexample.org\n", string(data))
}

func TestOutcomeLogRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rej.txt")
	log := NewOutcomeLog(path)

	require.NoError(t, log.Remove(), "removing a log that never existed is not an error")

	require.NoError(t, log.Append("example.com"))
	require.NoError(t, log.Remove())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
