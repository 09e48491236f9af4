package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cabot-http/conformance-tests/framework"
)

type commandParams struct {
	clientCommand    string
	referenceCommand string
	configPath       string
	corpusPath       string
	koLogPath        string
	rejLogPath       string
	fixtureBinary    string
	port             int
	adminPort        int
	strict404        bool
	scenariosOnly    bool
	liveOnly         bool
	headless         bool
	dnsPrecheck      bool
	filters          framework.RegexFilters
	debug            bool
	debugAll         bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.clientCommand, "client", "", "command for the client under test")
	fs.StringVar(&c.referenceCommand, "reference", "curl", "command for the reference client")
	fs.StringVar(&c.configPath, "config", "", "JSON file describing the client invocations")
	fs.StringVar(&c.corpusPath, "corpus", "", "newline-delimited list of live domains")
	fs.StringVar(&c.koLogPath, "ko-log", "out/ko.txt", "file recording confirmed regressions")
	fs.StringVar(&c.rejLogPath, "rej-log", "out/reject.txt", "file recording rejected (unstable) comparisons")
	fs.StringVar(&c.fixtureBinary, "fixture-bin", "./fixtureserver", "path of the fixture server binary")
	fs.IntVar(&c.port, "port", 8000, "port the fixture server will serve scenarios on")
	fs.IntVar(&c.adminPort, "admin-port", 8001, "port for the fixture server's status/shutdown resources")
	fs.BoolVar(&c.strict404, "strict-404", false, "make the fixture server drop connections on unknown paths")
	fs.BoolVar(&c.scenariosOnly, "scenarios-only", false, "run only the wire-level scenario suite")
	fs.BoolVar(&c.liveOnly, "live-only", false, "run only the live-domain differential batch")
	fs.BoolVar(&c.headless, "headless", false, "abort the batch on interrupt instead of prompting")
	fs.BoolVar(&c.dnsPrecheck, "dns-precheck", false, "resolve each corpus domain before fetching it")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenario tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenario tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.scenariosOnly && c.liveOnly {
		fmt.Fprintln(os.Stderr, "-scenarios-only and -live-only are mutually exclusive")
		return false
	}
	if !c.scenariosOnly && c.corpusPath == "" {
		fmt.Fprintln(os.Stderr, "-corpus is required unless -scenarios-only is set")
		return false
	}
	return true
}
