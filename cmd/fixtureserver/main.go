// Command fixtureserver serves the wire-level response scenarios used by the
// conformance suite. It is usually started as a background process by the
// harness, but can be run by hand for poking at scenarios with curl or netcat.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/cabot-http/conformance-tests/fixture"
)

const (
	defaultPort      = 8000
	defaultAdminPort = 8001
)

func main() {
	var port int
	var adminPort int
	var strict404 bool
	var quiet bool

	fs := flag.NewFlagSet("fixtureserver", flag.ExitOnError)
	fs.IntVar(&port, "port", defaultPort, "port to serve scenarios on")
	fs.IntVar(&adminPort, "admin-port", defaultAdminPort, "port for the status/shutdown resources")
	fs.BoolVar(&strict404, "strict-404", false, "drop connections on unknown paths instead of serving a 404 scenario")
	fs.BoolVar(&quiet, "quiet", false, "only log warnings and errors")
	_ = fs.Parse(os.Args[1:])

	logger := newLogger(quiet)

	unknownPath := fixture.ServeNotFound
	if strict404 {
		unknownPath = fixture.DropConnection
	}

	server, err := fixture.StartServer(fixture.NewCatalog(), fixture.Options{
		Addr:        fmt.Sprintf("127.0.0.1:%d", port),
		UnknownPath: unknownPath,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	admin, err := fixture.StartAdmin(fmt.Sprintf("127.0.0.1:%d", adminPort), server,
		func() { shutdown <- syscall.SIGTERM }, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		_ = server.Close()
		os.Exit(1)
	}

	logger.Info("fixture server running", "url", server.BaseURL(), "admin", admin.Addr())
	<-shutdown
	logger.Info("shutting down")
	_ = admin.Close()
	_ = server.Close()
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	w := os.Stderr
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(w.Fd()),
	}))
}
