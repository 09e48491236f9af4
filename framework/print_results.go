package framework

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
)

// PrintResults writes a summary of a test run to standard output.
func PrintResults(results Results) {
	if skipped := results.SkippedCount(); skipped > 0 {
		fmt.Printf("Tests skipped: %d\n", skipped)
	}
	if results.OK() {
		successColor.Printf("All tests passed (%d)\n", len(results.Tests)-results.SkippedCount())
		return
	}
	failureColor.Printf("FAILED TESTS (%d/%d):\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		failureColor.Printf("* %s\n", f.TestID)
		for _, err := range f.Errors {
			fmt.Printf("  - %s\n", err)
		}
	}
}
