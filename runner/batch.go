package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cabot-http/conformance-tests/corpus"
	"github.com/cabot-http/conformance-tests/framework"
)

// Decision is what the operator (or a headless policy) chooses after an
// interrupt: keep going with the next domain, or stop the batch.
type Decision int

const (
	ContinueBatch Decision = iota
	AbortBatch
)

// Decider yields a structured decision when the batch is interrupted while a
// domain is being processed. Passing a policy in, rather than blocking on a
// terminal prompt inside the loop, keeps the batch usable both interactively
// and headless.
type Decider interface {
	OnInterrupt(domain string) Decision
}

type DeciderFunc func(domain string) Decision

func (f DeciderFunc) OnInterrupt(domain string) Decision { return f(domain) }

// AlwaysAbort is the headless policy: any interrupt stops the batch.
var AlwaysAbort = DeciderFunc(func(string) Decision { return AbortBatch })

// PromptDecider reproduces the interactive behavior: ask on the terminal
// whether to continue with the next domain.
type PromptDecider struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptDecider) OnInterrupt(domain string) Decision {
	fmt.Fprintf(p.Out, "\nInterrupted on %s. Continue: Y/n ? ", domain)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil || strings.HasPrefix(strings.TrimSpace(line), "n") {
		return AbortBatch
	}
	return ContinueBatch
}

// Summary counts the outcomes of a batch run.
type Summary struct {
	Processed int
	OK        int
	KO        int
	REJ       int
	Errors    int
	Aborted   bool
}

// Runner executes the differential comparison for each corpus domain, one
// domain at a time. Sequencing is deliberate: concurrent fetches against live
// domains would make outcome comparisons ambiguous and invite rate limiting.
type Runner struct {
	Client    Fetcher
	Reference Fetcher
	Paths     ArtifactPaths
	KOLog     *OutcomeLog
	REJLog    *OutcomeLog
	// Precheck, when set, resolves each domain before spawning the clients.
	Precheck *DNSPrecheck
	// Output receives per-domain progress lines. Defaults to os.Stdout.
	Output io.Writer
	Logger framework.Logger
}

func (r *Runner) output() io.Writer {
	if r.Output != nil {
		return r.Output
	}
	return os.Stdout
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// PurgeSession removes the outcome logs and any leftover artifacts from a
// previous run, so a new session never reads stale state.
func (r *Runner) PurgeSession() error {
	r.Paths.RemoveAll()
	if err := r.KOLog.Remove(); err != nil {
		return err
	}
	return r.REJLog.Remove()
}

// ProcessDomain runs both clients against one URL and classifies the result.
// The comparison artifacts are deleted before it returns, whatever happens.
func (r *Runner) ProcessDomain(ctx context.Context, domain, url string) (Outcome, error) {
	defer r.Paths.RemoveAll()

	fmt.Fprintln(r.output(), url)
	if r.Precheck != nil {
		if err := r.Precheck.Lookup(ctx, domain); err != nil {
			return "", err
		}
	}

	fmt.Fprint(r.output(), ".")
	if err := r.Client.Fetch(ctx, url, r.Paths.ClientOut); err != nil {
		return "", fmt.Errorf("client under test: %w", err)
	}
	fmt.Fprint(r.output(), ".")
	if err := r.Reference.Fetch(ctx, url, r.Paths.ReferenceOut); err != nil {
		return "", fmt.Errorf("reference client: %w", err)
	}
	fmt.Fprint(r.output(), ".")

	equal, err := FilesEqual(r.Paths.ClientOut, r.Paths.ReferenceOut)
	if err != nil {
		return "", err
	}
	if equal {
		fmt.Fprintf(r.output(), "\n%s\n", OutcomeOK)
		return OutcomeOK, nil
	}

	classifier := &Classifier{
		Reference: r.Reference,
		Paths:     r.Paths,
		KOLog:     r.KOLog,
		REJLog:    r.REJLog,
		Logger:    r.Logger,
	}
	outcome, err := classifier.Classify(ctx, domain, url)
	if err != nil {
		return outcome, err
	}
	fmt.Fprintf(r.output(), "\n%s\n", outcome)
	return outcome, nil
}

// RunBatch processes every corpus entry in order. Per-domain errors are
// counted and logged but never stop the batch. A signal on interrupts cancels
// the current domain's fetches; the decider then chooses whether the batch
// continues with the next domain or stops.
func (r *Runner) RunBatch(
	ctx context.Context,
	entries []corpus.Entry,
	interrupts <-chan os.Signal,
	decider Decider,
) (Summary, error) {
	if decider == nil {
		decider = AlwaysAbort
	}
	if err := r.PurgeSession(); err != nil {
		return Summary{}, fmt.Errorf("purging previous session state: %w", err)
	}

	var summary Summary
	for _, entry := range entries {
		domainCtx, cancel := context.WithCancel(ctx)
		interrupted := make(chan struct{})
		watcherDone := make(chan struct{})
		go func() {
			defer close(watcherDone)
			select {
			case <-interrupts:
				close(interrupted)
				cancel()
			case <-domainCtx.Done():
			}
		}()

		outcome, err := r.ProcessDomain(domainCtx, entry.Domain, entry.URL)
		cancel()
		<-watcherDone

		summary.Processed++
		wasInterrupted := false
		select {
		case <-interrupted:
			// only a domain whose fetch actually failed was cut short; a
			// domain that completed before the signal landed keeps its
			// recorded outcome and the late signal is dropped
			wasInterrupted = err != nil
		default:
		}

		switch {
		case wasInterrupted:
			if decider.OnInterrupt(entry.Domain) == AbortBatch {
				summary.Aborted = true
				return summary, nil
			}
		case err != nil:
			summary.Errors++
			r.logf("%s: %s", entry.Domain, err)
			fmt.Fprintf(r.output(), "\nerror: %s\n", err)
		default:
			switch outcome {
			case OutcomeOK:
				summary.OK++
			case OutcomeKO:
				summary.KO++
			case OutcomeREJ:
				summary.REJ++
			}
		}
	}
	return summary, nil
}
