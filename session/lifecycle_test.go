package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	args := Args(Options{Port: 8000, AdminPort: 8001})
	assert.Equal(t, []string{"-port", "8000", "-admin-port", "8001"}, args)

	args = Args(Options{Port: 9000, AdminPort: 9001, StrictNotFound: true})
	assert.Equal(t, []string{"-port", "9000", "-admin-port", "9001", "-strict-404"}, args)
}

func TestBaseURL(t *testing.T) {
	l := &Lifecycle{opts: Options{Port: 8000, AdminPort: 8001}}
	assert.Equal(t, "http://127.0.0.1:8000", l.BaseURL())
	assert.Equal(t, "http://127.0.0.1:8001/status", l.statusURL())
	assert.Equal(t, "http://127.0.0.1:8001/shutdown", l.shutdownURL())
}

func TestStartReportsUnlaunchableServer(t *testing.T) {
	_, err := Start(Options{
		ServerBinary: filepath.Join(t.TempDir(), "no-such-server"),
		Port:         8000,
		AdminPort:    8001,
	})
	require.Error(t, err)
}

func TestStartWithGraceOnlySkipsPolling(t *testing.T) {
	// "true" exits immediately; with polling disabled, Start must not contact
	// the admin port at all, so the dead process is not detected here.
	l, err := Start(Options{
		ServerBinary:  "true",
		Port:          8000,
		AdminPort:     8001,
		StartupGrace:  10 * time.Millisecond,
		StatusTimeout: -1,
	})
	require.NoError(t, err)
	require.NoError(t, l.Stop())
}
