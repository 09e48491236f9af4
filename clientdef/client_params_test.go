package clientdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestClientArgsDefaults(t *testing.T) {
	def := ClientDefinition{Command: "./cabot"}
	args := def.Args("http://example.com", "/tmp/out.txt")
	assert.Equal(t, []string{
		"http://example.com",
		"--timeout", "30",
		"--user-agent", "curl/7.68.0",
		"-o", "/tmp/out.txt",
	}, args)
}

func TestClientArgsWithOverrides(t *testing.T) {
	def := ClientDefinition{
		Command:            "./cabot",
		TimeoutSeconds:     ldvalue.NewOptionalInt(10),
		DNSTimeoutSeconds:  ldvalue.NewOptionalInt(2),
		ReadTimeoutSeconds: ldvalue.NewOptionalInt(5),
		UserAgent:          "conformance/1.0",
	}
	args := def.Args("http://example.com", "out.txt")
	assert.Equal(t, []string{
		"http://example.com",
		"--timeout", "10",
		"--dns-timeout", "2",
		"--read-timeout", "5",
		"--user-agent", "conformance/1.0",
		"-o", "out.txt",
	}, args)
}

func TestReferenceArgs(t *testing.T) {
	def := ReferenceDefinition{Command: "curl"}
	assert.Equal(t, []string{"http://example.com", "-o", "out.txt"},
		def.Args("http://example.com", "out.txt"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"client": {"command": "./cabot", "timeoutSeconds": 15},
		"reference": {"command": "/usr/bin/curl"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./cabot", cfg.Client.Command)
	assert.Equal(t, 15, cfg.Client.TimeoutSeconds.IntValue())
	assert.False(t, cfg.Client.DNSTimeoutSeconds.IsDefined())
	assert.Equal(t, "/usr/bin/curl", cfg.Reference.Command)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
