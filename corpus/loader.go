// Package corpus loads the curated list of live domains used for differential
// testing.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one domain to test, with the URL that will be fetched for it.
type Entry struct {
	Domain string
	URL    string
}

// Corpus reads (domain, url) pairs from a newline-delimited file. Lines
// beginning with "#" are comments; blank lines are skipped. Hostnames are not
// validated here: a malformed entry fails naturally when fetched and is
// reported as a per-domain error, not a loader error.
type Corpus struct {
	path string
}

func New(path string) *Corpus {
	return &Corpus{path: path}
}

// Each streams the corpus entries to fn one line at a time, without ever
// materializing the whole corpus. It stops at the first error fn returns and
// propagates it. The file is re-opened on every call, so the sequence can be
// restarted for a new run without holding the file open.
func (c *Corpus) Each(fn func(Entry) error) error {
	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()
	return Each(f, fn)
}

// Entries collects the whole corpus into a slice, for callers that need the
// count up front.
func (c *Corpus) Entries() ([]Entry, error) {
	var entries []Entry
	err := c.Each(func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Each streams corpus entries from r.
func Each(r io.Reader, fn func(Entry) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		domain := strings.TrimSpace(line)
		if domain == "" {
			continue
		}
		entry := Entry{
			Domain: domain,
			URL:    "http://" + domain,
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}
	return nil
}

// Parse reads corpus entries from r into a slice.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	err := Each(r, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
