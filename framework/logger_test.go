package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithPrefix(t *testing.T) {
	var capture CapturingLogger
	logger := LoggerWithPrefix(&capture, "[reference] ")
	logger.Printf("running: %s", "curl http://example.com")

	output := capture.Output()
	require.Len(t, output, 1)
	assert.Equal(t, "[reference] running: curl http://example.com", output[0].Message)
}

func TestCapturingLoggerOutputIsACopy(t *testing.T) {
	var capture CapturingLogger
	capture.Printf("first")
	output := capture.Output()
	capture.Printf("second")

	require.Len(t, output, 1)
	assert.Equal(t, "first", output[0].Message)
}

func TestCapturedOutputDump(t *testing.T) {
	var capture CapturingLogger
	capture.Printf("one")
	capture.Printf("two")

	var sb strings.Builder
	capture.Output().Dump(&sb, "  DEBUG ")
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[0], "] one"))
	assert.True(t, strings.HasSuffix(lines[1], "] two"))
}
