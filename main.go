package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"

	"github.com/cabot-http/conformance-tests/clientdef"
	"github.com/cabot-http/conformance-tests/corpus"
	"github.com/cabot-http/conformance-tests/framework"
	"github.com/cabot-http/conformance-tests/runner"
	"github.com/cabot-http/conformance-tests/scenariotests"
	"github.com/cabot-http/conformance-tests/session"
)

const dnsPrecheckTimeout = 5 * time.Second

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = stdlogAdapter{log.New(os.Stdout, "", log.LstdFlags)}
	}

	cfg := clientdef.HarnessConfig{
		Reference: clientdef.ReferenceDefinition{Command: params.referenceCommand},
	}
	if params.configPath != "" {
		loaded, err := clientdef.LoadConfig(params.configPath)
		if err != nil {
			fatal("%s", err)
		}
		cfg = loaded
	}
	if params.clientCommand != "" {
		cfg.Client.Command = params.clientCommand
	}
	if cfg.Reference.Command == "" {
		cfg.Reference.Command = "curl"
	}

	var clientFetcher runner.Fetcher
	if cfg.Client.Command != "" {
		clientFetcher = runner.NewClientFetcher(cfg.Client,
			framework.LoggerWithPrefix(mainDebugLogger, "[client] "))
	}

	ok := true
	if !params.liveOnly {
		results, err := runScenarioPhase(params, clientFetcher, mainDebugLogger)
		if err != nil {
			fatal("%s", err)
		}
		fmt.Println()
		framework.PrintResults(results)
		ok = ok && results.OK()
	}

	if !params.scenariosOnly {
		if clientFetcher == nil {
			fatal("-client (or a config file with a client command) is required for live-domain runs")
		}
		if err := runLivePhase(params, cfg, clientFetcher, mainDebugLogger); err != nil {
			fatal("%s", err)
		}
	}

	if !ok {
		os.Exit(1)
	}
}

func runScenarioPhase(
	params commandParams,
	clientFetcher runner.Fetcher,
	debugLogger framework.Logger,
) (framework.Results, error) {
	lifecycle, err := session.Start(session.Options{
		ServerBinary:   params.fixtureBinary,
		Port:           params.port,
		AdminPort:      params.adminPort,
		StrictNotFound: params.strict404,
		Logger:         framework.LoggerWithPrefix(debugLogger, "[fixture] "),
	})
	if err != nil {
		return framework.Results{}, err
	}
	defer lifecycle.Stop()

	fmt.Println()
	framework.PrintFilterDescription(params.filters)
	fmt.Println("Running scenario suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := scenariotests.RunSuite(lifecycle.BaseURL(), clientFetcher, params.filters.AsFilter, testLogger)
	return results, nil
}

func runLivePhase(
	params commandParams,
	cfg clientdef.HarnessConfig,
	clientFetcher runner.Fetcher,
	debugLogger framework.Logger,
) error {
	entries, err := corpus.New(params.corpusPath).Entries()
	if err != nil {
		return err
	}

	r := &runner.Runner{
		Client:    clientFetcher,
		Reference: runner.NewReferenceFetcher(cfg.Reference,
			framework.LoggerWithPrefix(debugLogger, "[reference] ")),
		Paths:     runner.DefaultArtifactPaths(),
		KOLog:     runner.NewOutcomeLog(params.koLogPath),
		REJLog:    runner.NewOutcomeLog(params.rejLogPath),
		Logger:    debugLogger,
	}
	if params.dnsPrecheck {
		precheck, err := runner.NewDNSPrecheck(dnsPrecheckTimeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "DNS precheck unavailable: %s\n", err)
		} else {
			r.Precheck = precheck
		}
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	var decider runner.Decider = runner.PromptDecider{In: os.Stdin, Out: os.Stdout}
	if params.headless {
		decider = runner.AlwaysAbort
	}

	fmt.Printf("\nRunning differential batch over %d domains\n", len(entries))
	summary, err := r.RunBatch(context.Background(), entries, interrupts, decider)
	if err != nil {
		return err
	}
	printSummary(summary, r.KOLog, r.REJLog)
	return nil
}

func printSummary(summary runner.Summary, koLog, rejLog *runner.OutcomeLog) {
	fmt.Println()
	if summary.Aborted {
		color.New(color.FgYellow).Println("Batch aborted by operator")
	}
	fmt.Printf("Domains processed: %d\n", summary.Processed)
	color.New(color.FgGreen).Printf("  OK:  %d\n", summary.OK)
	color.New(color.FgRed).Printf("  KO:  %d\n", summary.KO)
	color.New(color.FgYellow).Printf("  REJ: %d\n", summary.REJ)
	if summary.Errors > 0 {
		color.New(color.FgRed).Printf("  errors: %d\n", summary.Errors)
	}
	if summary.KO > 0 {
		fmt.Printf("Confirmed regressions recorded in %s\n", koLog.Path())
	}
	if summary.REJ > 0 {
		fmt.Printf("Unstable targets recorded in %s\n", rejLog.Path())
	}
}

type stdlogAdapter struct {
	log *log.Logger
}

func (s stdlogAdapter) Printf(message string, args ...interface{}) {
	s.log.Printf(message, args...)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
