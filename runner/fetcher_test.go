package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabot-http/conformance-tests/clientdef"
)

func TestRenderCommand(t *testing.T) {
	rendered := RenderCommand("./cabot", []string{
		"http://example.com/a b", "--user-agent", "curl/7.68.0", "-o", "/tmp/out.txt",
	})
	assert.Equal(t, "./cabot 'http://example.com/a b' --user-agent curl/7.68.0 -o /tmp/out.txt", rendered)
}

func TestClientFetcherUsesDefinitionArgs(t *testing.T) {
	def := clientdef.ClientDefinition{Command: "./cabot"}
	f := NewClientFetcher(def, nil)
	assert.Equal(t, "./cabot", f.Command)
	assert.Equal(t, def.Args("http://x", "out"), f.BuildArgs("http://x", "out"))
	assert.False(t, f.BestEffort)
}

func TestBestEffortFetchToleratesMissingBinary(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	f := &CommandFetcher{
		Command:    filepath.Join(t.TempDir(), "no-such-binary"),
		BuildArgs:  clientdef.ReferenceDefinition{}.Args,
		BestEffort: true,
	}
	require.NoError(t, f.Fetch(context.Background(), "http://example.com", outPath))

	// the comparison step still gets a file to read
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestStrictFetchReportsMissingBinary(t *testing.T) {
	f := &CommandFetcher{
		Command:   filepath.Join(t.TempDir(), "no-such-binary"),
		BuildArgs: clientdef.ReferenceDefinition{}.Args,
	}
	err := f.Fetch(context.Background(), "http://example.com", filepath.Join(t.TempDir(), "out.txt"))
	assert.Error(t, err)
}

func TestBestEffortFetchKeepsExistingOutput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(outPath, []byte("partial"), 0o644))
	f := &CommandFetcher{
		Command:    filepath.Join(t.TempDir(), "no-such-binary"),
		BuildArgs:  clientdef.ReferenceDefinition{}.Args,
		BestEffort: true,
	}
	require.NoError(t, f.Fetch(context.Background(), "http://example.com", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "partial", string(data))
}
