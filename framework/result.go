package framework

import (
	"strings"
)

// Results accumulates the outcome of every test that was executed in a run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// SkippedCount returns how many tests were skipped, whether by a filter or by
// the test itself.
func (r Results) SkippedCount() int {
	n := 0
	for _, t := range r.Tests {
		if t.Skipped {
			n++
		}
	}
	return n
}

// TestID identifies a test as a path of subtest names, like "framing/chunked/small".
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
