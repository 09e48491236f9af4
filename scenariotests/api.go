package scenariotests

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cabot-http/conformance-tests/framework"
	"github.com/cabot-http/conformance-tests/runner"
)

const rawFetchTimeout = 5 * time.Second
const clientRunTimeout = 30 * time.Second

type environment struct {
	baseURL string
	host    string
	client  runner.Fetcher
}

// T represents a test or subtest in the scenario suite.
//
// It implements the same basic functionality as Go's testing.T, but outside
// the Go test runner, with debug logging captured per test. To make test
// assertions, use the assert and require packages, passing the *T as if it
// were a *testing.T.
//
// On top of that it provides the two ways of talking to the fixture server:
// a raw byte-level fetch (so framing can be inspected without any client-side
// HTTP machinery getting in the way) and an invocation of the client under
// test.
type T struct {
	context *framework.Context
	env     *environment
}

// RawResponse is the fully captured result of one raw fetch.
type RawResponse struct {
	// Status is the status portion of the status line, e.g. "200 OK".
	Status string
	Header http.Header
	Body   []byte
	// Raw holds every byte the server sent, unparsed.
	Raw []byte
}

func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest, like the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// RequireClient skips the test when no client under test was configured for
// this run (the raw fixture assertions still run without one).
func (t *T) RequireClient() {
	if t.env.client == nil {
		t.context.SkipWithReason("no client under test configured")
	}
}

// FetchRaw sends a single GET over a bare TCP connection and captures every
// byte the server responds with, until the server closes the connection.
// Using a raw socket rather than an HTTP client is the point: nothing
// normalizes or re-frames the response before the test sees it.
func (t *T) FetchRaw(pathAndQuery string) RawResponse {
	conn, err := net.DialTimeout("tcp", t.env.host, rawFetchTimeout)
	require.NoError(t, err, "dialing fixture server")
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(rawFetchTimeout)))

	request := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n",
		pathAndQuery, t.env.host)
	_, err = io.WriteString(conn, request)
	require.NoError(t, err, "writing request")

	raw, err := io.ReadAll(conn)
	require.NoError(t, err, "reading response")
	t.Debug("<< %q", raw)

	return parseRawResponse(t, raw)
}

func parseRawResponse(t *T, raw []byte) RawResponse {
	sep := bytes.Index(raw, []byte("\r\n\r\n"))
	require.True(t, sep >= 0, "response has no header/body separator: %q", raw)
	head, body := raw[:sep], raw[sep+4:]

	lines := bufio.NewReader(bytes.NewReader(append(head, "\r\n"...)))
	statusLine, err := lines.ReadString('\n')
	require.NoError(t, err)
	status := strings.TrimRight(statusLine, "\r\n")
	require.True(t, strings.HasPrefix(status, "HTTP/1.1 "), "unexpected status line %q", status)
	status = strings.TrimPrefix(status, "HTTP/1.1 ")

	mimeHeader, err := textproto.NewReader(lines).ReadMIMEHeader()
	if err != nil && err != io.EOF {
		require.NoError(t, err, "parsing response headers")
	}

	return RawResponse{
		Status: status,
		Header: http.Header(mimeHeader),
		Body:   body,
		Raw:    raw,
	}
}

// RunClient invokes the client under test against a fixture path and returns
// the bytes it wrote to its output file. The invocation must succeed.
func (t *T) RunClient(pathAndQuery string) []byte {
	out, err := t.runClient(pathAndQuery)
	require.NoError(t, err, "client under test failed")
	return out
}

// RunClientLenient is like RunClient but tolerates a failing exit, returning
// whatever the client managed to write. Used for scenarios (like error
// statuses) where clients legitimately disagree about the exit code.
func (t *T) RunClientLenient(pathAndQuery string) []byte {
	out, err := t.runClient(pathAndQuery)
	if err != nil {
		t.Debug("client exit tolerated: %s", err)
	}
	return out
}

func (t *T) runClient(pathAndQuery string) ([]byte, error) {
	t.RequireClient()

	outFile, err := os.CreateTemp("", "scenario-out-*.txt")
	require.NoError(t, err)
	outPath := outFile.Name()
	require.NoError(t, outFile.Close())
	defer os.Remove(outPath)

	ctx, cancel := context.WithTimeout(context.Background(), clientRunTimeout)
	defer cancel()
	runErr := t.env.client.Fetch(ctx, t.env.baseURL+pathAndQuery, outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		data = nil
	}
	t.Debug("client output: %q", data)
	return data, runErr
}
