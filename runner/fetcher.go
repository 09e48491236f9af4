package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/cabot-http/conformance-tests/clientdef"
	"github.com/cabot-http/conformance-tests/framework"
)

// Fetcher fetches one URL and writes the captured response to a file.
type Fetcher interface {
	Fetch(ctx context.Context, url string, outPath string) error
}

// CommandFetcher runs an external client binary for each fetch. The timeout is
// enforced outside the spawned process, so a hung client cannot stall the
// batch.
type CommandFetcher struct {
	Command   string
	BuildArgs func(url, outPath string) []string
	Timeout   time.Duration
	// BestEffort tolerates spawn failures and non-zero exits, guaranteeing
	// only that the output file exists afterward (possibly empty). Used for
	// the reference client.
	BestEffort bool
	Logger     framework.Logger
}

// NewClientFetcher builds the fetcher for the client under test.
func NewClientFetcher(def clientdef.ClientDefinition, logger framework.Logger) *CommandFetcher {
	return &CommandFetcher{
		Command:   def.Command,
		BuildArgs: def.Args,
		Timeout:   time.Duration(def.TimeoutSeconds.OrElse(clientdef.DefaultTimeoutSeconds)) * time.Second,
		Logger:    logger,
	}
}

// NewReferenceFetcher builds the best-effort fetcher for the reference client.
func NewReferenceFetcher(def clientdef.ReferenceDefinition, logger framework.Logger) *CommandFetcher {
	return &CommandFetcher{
		Command:    def.Command,
		BuildArgs:  def.Args,
		Timeout:    clientdef.DefaultTimeoutSeconds * time.Second,
		BestEffort: true,
		Logger:     logger,
	}
}

func (f *CommandFetcher) Fetch(ctx context.Context, url, outPath string) error {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = clientdef.DefaultTimeoutSeconds * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := f.BuildArgs(url, outPath)
	if f.Logger != nil {
		f.Logger.Printf("running: %s", RenderCommand(f.Command, args))
	}

	cmd := exec.CommandContext(ctx, f.Command, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	err := cmd.Run()

	if f.BestEffort {
		if err != nil && f.Logger != nil {
			f.Logger.Printf("reference client failed (tolerated): %s", err)
		}
		return ensureFileExists(outPath)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", f.Command, url, err)
	}
	return nil
}

// ensureFileExists creates an empty output file if the best-effort client
// wrote nothing, so the comparison step always has two files to read.
func ensureFileExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating empty output %s: %w", path, err)
	}
	return file.Close()
}

// RenderCommand formats a command line so it can be copied into a shell to
// reproduce a fetch by hand.
func RenderCommand(name string, args []string) string {
	quoted := []string{shellescape.Quote(name)}
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
