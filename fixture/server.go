package fixture

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"
)

// UnknownPathMode selects what the server does when a request path matches no
// route.
type UnknownPathMode int

const (
	// ServeNotFound answers unmatched paths with the catalog's 404 scenario.
	ServeNotFound UnknownPathMode = iota
	// DropConnection closes the connection without writing a response, so a
	// test hitting an unregistered path fails loudly.
	DropConnection
)

const requestReadTimeout = 10 * time.Second

// Options configures a fixture server.
type Options struct {
	// Addr is the listen address. Defaults to "127.0.0.1:8000".
	Addr string
	// UnknownPath selects the behavior for unmatched request paths.
	UnknownPath UnknownPathMode
	// Logger receives request-level log records. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server is a minimal single-request-at-a-time HTTP responder. It parses each
// request only far enough to extract the path and query string, resolves the
// path against the catalog, and writes exactly the scenario's bytes. The
// connection is closed after every response, which is what lets the no-length
// scenarios signal end-of-body by closure.
type Server struct {
	catalog  *Catalog
	listener net.Listener
	opts     Options
	logger   *slog.Logger
	done     chan struct{}
}

// StartServer binds the listener and starts the sequential accept loop.
// Requests are deliberately processed one at a time: the scenarios are
// deterministic and order-independent, and concurrency would only make the
// framing tests racy.
func StartServer(catalog *Catalog, opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8000"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("fixture server listen on %s: %w", opts.Addr, err)
	}
	s := &Server{
		catalog:  catalog,
		listener: listener,
		opts:     opts,
		logger:   opts.Logger,
		done:     make(chan struct{}),
	}
	go s.serve()
	return s, nil
}

// Addr returns the bound listen address, e.g. "127.0.0.1:8000".
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// BaseURL returns the http:// URL of the server.
func (s *Server) BaseURL() string {
	return "http://" + s.Addr()
}

// Close stops the listener and waits for the accept loop to finish.
func (s *Server) Close() error {
	err := s.listener.Close()
	<-s.done
	return err
}

func (s *Server) serve() {
	defer close(s.done)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// listener closed
			return
		}
		s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(requestReadTimeout))

	method, path, query, err := readRequest(bufio.NewReader(conn))
	if err != nil {
		s.logger.Warn("unreadable request", "error", err)
		return
	}

	if method == "HEAD" && path == "/" {
		// readiness probe
		_, _ = io.WriteString(conn, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
		return
	}

	scenario, ok := s.catalog.Resolve(path, query)
	if !ok {
		if s.opts.UnknownPath == DropConnection {
			s.logger.Error("no scenario for path, dropping connection", "path", path)
			return
		}
		scenario = s.catalog.NotFound()
	}
	s.logger.Info("serving scenario", "path", path, "query", query, "scenario", scenario.Name)

	if err := writeScenario(conn, scenario); err != nil {
		s.logger.Warn("write failed", "scenario", scenario.Name, "error", err)
	}
}

// readRequest consumes the request line and headers. The request body, if any,
// is ignored; none of the scenarios depend on it.
func readRequest(br *bufio.Reader) (method, path, query string, err error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", "", "", fmt.Errorf("reading request line: %w", err)
	}
	parts := strings.Fields(strings.TrimRight(line, "\r\n"))
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("malformed request line %q", line)
	}
	method = parts[0]
	target := parts[1]
	if i := strings.IndexByte(target, '?'); i >= 0 {
		path, query = target[:i], target[i+1:]
	} else {
		path = target
	}

	// drain headers up to the blank line
	for {
		h, err := br.ReadString('\n')
		if err != nil {
			return "", "", "", fmt.Errorf("reading headers: %w", err)
		}
		if h == "\r\n" || h == "\n" {
			return method, path, query, nil
		}
	}
}

// writeScenario emits the response exactly as specified: status line, headers
// in order, blank line, body bytes. No headers are ever added beyond what the
// scenario lists.
func writeScenario(w io.Writer, scenario Scenario) error {
	var b strings.Builder
	b.WriteString("HTTP/1.1 ")
	b.WriteString(scenario.StatusLine)
	b.WriteString("\r\n")
	for _, h := range scenario.Headers {
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	_, err := w.Write(scenario.Body)
	return err
}
