package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFilesEqual(t *testing.T) {
	a := writeTemp(t, "a", []byte("same bytes"))
	b := writeTemp(t, "b", []byte("same bytes"))
	eq, err := FilesEqual(a, b)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestFilesNotEqual(t *testing.T) {
	a := writeTemp(t, "a", []byte("some bytes"))
	b := writeTemp(t, "b", []byte("other bytes"))
	eq, err := FilesEqual(a, b)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestFilesEqualSameSizeDifferentContent(t *testing.T) {
	a := writeTemp(t, "a", []byte("aaaa"))
	b := writeTemp(t, "b", []byte("aaab"))
	eq, err := FilesEqual(a, b)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestFilesEqualLargerThanOneChunk(t *testing.T) {
	data := bytes.Repeat([]byte("x"), compareChunkSize*2+17)
	a := writeTemp(t, "a", data)
	b := writeTemp(t, "b", data)
	eq, err := FilesEqual(a, b)
	require.NoError(t, err)
	assert.True(t, eq)

	data[len(data)-1] = 'y'
	c := writeTemp(t, "c", data)
	eq, err = FilesEqual(a, c)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestFilesEqualEmptyFiles(t *testing.T) {
	a := writeTemp(t, "a", nil)
	b := writeTemp(t, "b", nil)
	eq, err := FilesEqual(a, b)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestFilesEqualMissingFile(t *testing.T) {
	a := writeTemp(t, "a", []byte("x"))
	_, err := FilesEqual(a, filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
