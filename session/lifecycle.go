// Package session owns the fixture server background process for the duration
// of a scenario test session.
package session

import (
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/cabot-http/conformance-tests/framework"
)

const (
	// DefaultStartupGrace matches the original harness's fixed wait between
	// launching the fixture process and issuing the first request. Used only
	// when status polling is disabled.
	DefaultStartupGrace = 700 * time.Millisecond

	DefaultStatusTimeout = 10 * time.Second
	DefaultStopTimeout   = 2 * time.Second

	statusPollInterval = 100 * time.Millisecond
)

// Options configures a fixture server session.
type Options struct {
	// ServerBinary is the path of the fixture server executable.
	ServerBinary string
	Port         int
	AdminPort    int
	// StrictNotFound makes the fixture drop connections on unknown paths
	// instead of serving the default 404 scenario.
	StrictNotFound bool
	// StatusTimeout bounds the readiness poll against the admin status
	// resource. Set to 0 to skip polling and rely on StartupGrace alone.
	StatusTimeout time.Duration
	// StartupGrace is the fixed wait used when polling is disabled.
	StartupGrace time.Duration
	Logger       framework.Logger
}

// Lifecycle is the explicit owner of the background fixture process: acquired
// at session setup, released via Stop on every exit path, including failures.
// There is deliberately no package-level process handle.
type Lifecycle struct {
	opts     Options
	cmd      *exec.Cmd
	logger   framework.Logger
	stopOnce sync.Once
	stopErr  error
}

// Args returns the fixture server command line for the given options.
func Args(opts Options) []string {
	args := []string{
		"-port", strconv.Itoa(opts.Port),
		"-admin-port", strconv.Itoa(opts.AdminPort),
	}
	if opts.StrictNotFound {
		args = append(args, "-strict-404")
	}
	return args
}

// Start launches the fixture server process and waits for it to become ready.
// Startup is asynchronous relative to the caller, so Start either polls the
// admin status resource until it answers or, when polling is disabled, sleeps
// for the fixed grace interval.
func Start(opts Options) (*Lifecycle, error) {
	if opts.StatusTimeout == 0 && opts.StartupGrace == 0 {
		opts.StatusTimeout = DefaultStatusTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}

	cmd := exec.Command(opts.ServerBinary, Args(opts)...)
	logger.Printf("starting fixture server: %s", cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting fixture server: %w", err)
	}

	l := &Lifecycle{opts: opts, cmd: cmd, logger: logger}
	if opts.StatusTimeout > 0 {
		if err := l.awaitReady(opts.StatusTimeout); err != nil {
			l.Stop()
			return nil, err
		}
	} else {
		time.Sleep(opts.StartupGrace)
	}
	return l, nil
}

// BaseURL returns the URL the fixture scenarios are served on.
func (l *Lifecycle) BaseURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", l.opts.Port)
}

func (l *Lifecycle) statusURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/status", l.opts.AdminPort)
}

func (l *Lifecycle) shutdownURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/shutdown", l.opts.AdminPort)
}

func (l *Lifecycle) awaitReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		resp, err := http.Get(l.statusURL())
		if err == nil {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				l.logger.Printf("fixture server ready: %s", string(data))
				return nil
			}
			lastErr = fmt.Errorf("status resource answered HTTP %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(statusPollInterval)
	}
	return fmt.Errorf("fixture server did not become ready within %s: %w", timeout, lastErr)
}

// Stop terminates the fixture server unconditionally: first a graceful
// shutdown request, then a kill if the process is still alive. Safe to call
// more than once.
func (l *Lifecycle) Stop() error {
	l.stopOnce.Do(func() {
		l.stopErr = l.stop()
	})
	return l.stopErr
}

func (l *Lifecycle) stop() error {
	// best-effort graceful shutdown; the process may already be gone
	if resp, err := http.Post(l.shutdownURL(), "", nil); err == nil {
		resp.Body.Close()
	}

	done := make(chan error, 1)
	go func() { done <- l.cmd.Wait() }()
	select {
	case <-done:
		return nil
	case <-time.After(DefaultStopTimeout):
	}

	l.logger.Printf("fixture server did not exit, killing it")
	if err := l.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("killing fixture server: %w", err)
	}
	<-done
	return nil
}
