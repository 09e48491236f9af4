package runner

import (
	"context"
	"fmt"

	"github.com/cabot-http/conformance-tests/framework"
)

// Classifier decides whether a mismatch between the client under test and the
// reference client is a confirmed defect or live-internet nondeterminism. It
// re-fetches the URL with the reference client a second time: if the two
// reference outputs agree, the reference was stable across the interval and
// the original mismatch is attributable to the client (KO); if they disagree,
// the target itself changed and the comparison is rejected (REJ).
//
// The cost is one extra reference fetch per disagreement, paid only on the
// expected-rare mismatch path.
type Classifier struct {
	Reference Fetcher
	Paths     ArtifactPaths
	KOLog     *OutcomeLog
	REJLog    *OutcomeLog
	Logger    framework.Logger
}

// Classify runs the re-fetch and appends the domain to the matching outcome
// log. The caller is responsible for deleting the artifacts afterward.
func (c *Classifier) Classify(ctx context.Context, domain, url string) (Outcome, error) {
	if err := c.Reference.Fetch(ctx, url, c.Paths.ReferenceRecheck); err != nil {
		return "", fmt.Errorf("re-fetching reference for %s: %w", domain, err)
	}
	stable, err := FilesEqual(c.Paths.ReferenceRecheck, c.Paths.ReferenceOut)
	if err != nil {
		return "", fmt.Errorf("comparing reference outputs for %s: %w", domain, err)
	}

	outcome, log := OutcomeREJ, c.REJLog
	if stable {
		outcome, log = OutcomeKO, c.KOLog
	}
	if c.Logger != nil {
		c.Logger.Printf("%s: %s", domain, outcome)
	}
	if err := log.Append(domain); err != nil {
		return outcome, err
	}
	return outcome, nil
}
