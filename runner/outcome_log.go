package runner

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutcomeLog is an append-only list of domain names, one per line. One log
// records confirmed regressions (KO), another records rejected comparisons
// (REJ). Only the domain name is retained; the comparison artifacts are
// deleted after classification.
type OutcomeLog struct {
	path string
}

func NewOutcomeLog(path string) *OutcomeLog {
	return &OutcomeLog{path: path}
}

func (l *OutcomeLog) Path() string {
	return l.path
}

func (l *OutcomeLog) Append(domain string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating outcome log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening outcome log %s: %w", l.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(domain + "\n"); err != nil {
		return fmt.Errorf("appending to outcome log %s: %w", l.path, err)
	}
	return nil
}

// Remove deletes the log file. Called before a session starts so a run never
// inherits stale entries from a previous one.
func (l *OutcomeLog) Remove() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
